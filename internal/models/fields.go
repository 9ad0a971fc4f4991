// fields.go
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

package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldProblem describes one column value the schema would not accept
type FieldProblem struct {
	Field  string
	Reason string
}

// Checker is implemented by every persisted entity.
// CheckFields mirrors the column definitions (lengths, precision, required values).
type Checker interface {
	CheckFields() []FieldProblem
}

func collect(problems ...*FieldProblem) []FieldProblem {
	var out []FieldProblem
	for _, p := range problems {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func requiredText(field, value string, maxLen int) *FieldProblem {
	if value == "" {
		return &FieldProblem{Field: field, Reason: "is required"}
	}
	return optionalText(field, value, maxLen)
}

func optionalText(field, value string, maxLen int) *FieldProblem {
	if utf8.RuneCountInString(value) > maxLen {
		return &FieldProblem{Field: field, Reason: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	return nil
}

func nullableText(field string, value *string, maxLen int) *FieldProblem {
	if value == nil {
		return nil
	}
	return optionalText(field, *value, maxLen)
}

// quantity checks a decimal(digits,places) column that only holds non-negative values
func quantity(field string, value decimal.Decimal, digits, places int32) *FieldProblem {
	if value.IsNegative() {
		return &FieldProblem{Field: field, Reason: "must not be negative"}
	}
	if !value.Equal(value.Round(places)) {
		return &FieldProblem{Field: field, Reason: fmt.Sprintf("must have at most %d decimal places", places)}
	}
	if value.Cmp(decimal.New(1, digits-places)) >= 0 {
		return &FieldProblem{Field: field, Reason: fmt.Sprintf("must have at most %d digits before the decimal point", digits-places)}
	}
	return nil
}

// CheckFields validates store columns
func (s *Store) CheckFields() []FieldProblem {
	return collect(
		requiredText("name", s.Name, 100),
		optionalText("location", s.Location, 255),
	)
}

// CheckFields validates category columns
func (c *Category) CheckFields() []FieldProblem {
	return collect(requiredText("name", c.Name, 100))
}

// CheckFields validates brand columns
func (b *Brand) CheckFields() []FieldProblem {
	return collect(requiredText("name", b.Name, 100))
}

// CheckFields validates item columns
func (i *Item) CheckFields() []FieldProblem {
	return collect(requiredText("name", i.Name, 150))
}

// CheckFields validates store item columns
func (si *StoreItem) CheckFields() []FieldProblem {
	return collect(
		quantity("price", si.Price, 10, 2),
		quantity("stock_quantity", si.StockQuantity, 10, 2),
		quantity("reorder_point", si.ReorderPoint, 10, 2),
		nullableText("sku", si.SKU, 50),
		nullableText("barcode", si.Barcode, 50),
	)
}
