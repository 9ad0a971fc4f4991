// validation.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"strings"

	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/models"
)

// CategoryPolicy decides whether an item's category satisfies an attribute table.
//
// The exact mode compares names byte for byte, which rejects "Bricks", "Pipes" and "Cables"
// categories for the Brick, Pipe and Cable tables. The normalized mode compares
// case-folded names with a trailing plural "s" removed.
type CategoryPolicy struct {
	Mode string
}

// ExactCategoryPolicy is the default policy
var ExactCategoryPolicy = CategoryPolicy{Mode: config.CategoryMatchExact}

// PolicyFromConfig builds the policy selected by CATEGORY_MATCH
func PolicyFromConfig(cfg *config.Config) CategoryPolicy {
	if cfg == nil || cfg.CategoryMatch == "" {
		return ExactCategoryPolicy
	}
	return CategoryPolicy{Mode: cfg.CategoryMatch}
}

// Matches compares an expected and an actual category name under the policy
func (p CategoryPolicy) Matches(expected, actual string) bool {
	if p.Mode == config.CategoryMatchNormalized {
		return normalizeCategory(expected) == normalizeCategory(actual)
	}
	return expected == actual
}

// Validate checks that item belongs to the category the attribute kind expects.
// The check is skipped while the item, its brand or its category is unknown.
func (p CategoryPolicy) Validate(attrs models.Attributes, item *models.Item) error {
	actual, ok := item.CategoryName()
	if !ok {
		return nil
	}
	spec, _ := models.SpecFor(attrs.Kind())
	if !p.Matches(spec.ExpectedCategory, actual) {
		return &CategoryMismatchError{Kind: attrs.Kind(), Expected: spec.ExpectedCategory, Actual: actual}
	}
	return nil
}

// ValidateCategory runs the exact category check
func ValidateCategory(attrs models.Attributes, item *models.Item) error {
	return ExactCategoryPolicy.Validate(attrs, item)
}

func normalizeCategory(name string) string {
	slug := strings.Join(strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "-")
	if len(slug) > 1 {
		slug = strings.TrimSuffix(slug, "s")
	}
	return slug
}
