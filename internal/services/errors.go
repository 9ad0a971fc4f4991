// errors.go
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
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/materials-catalog/internal/database"
	"github.com/localnerve/materials-catalog/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by identifier finds nothing
var ErrNotFound = errors.New("not found")

// UniquenessError is returned when a unique field or field pair collides with an existing record
type UniquenessError struct {
	Entity models.Kind
	Fields []string
	Value  string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s with %s %s already exists", e.Entity, strings.Join(e.Fields, ", "), e.Value)
}

// CategoryMismatchError is returned when an attribute record targets an item outside its category
type CategoryMismatchError struct {
	Kind     models.Kind
	Expected string
	Actual   string
}

func (e *CategoryMismatchError) Error() string {
	return fmt.Sprintf("Selected item does not belong to %s category (via its brand): item category is %q",
		e.Expected, e.Actual)
}

// MissingReferenceError is returned when a required parent reference is absent or unknown
type MissingReferenceError struct {
	Entity models.Kind
	Field  string
	ID     uint64
}

func (e *MissingReferenceError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s requires %s", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s references unknown %s %d", e.Entity, e.Field, e.ID)
}

// InvalidValueError is returned when column values do not fit the schema
type InvalidValueError struct {
	Entity   models.Kind
	Problems []models.FieldProblem
}

func (e *InvalidValueError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+" "+p.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// checkFields converts schema problems into an InvalidValueError
func checkFields(kind models.Kind, c models.Checker) error {
	if problems := c.CheckFields(); len(problems) > 0 {
		return &InvalidValueError{Entity: kind, Problems: problems}
	}
	return nil
}

// translateWriteError maps driver constraint failures that raced past the pre-checks
func translateWriteError(err error, unique *UniquenessError, missing *MissingReferenceError) error {
	switch {
	case err == nil:
		return nil
	case unique != nil && database.IsUniqueViolation(err):
		return unique
	case missing != nil && database.IsForeignKeyViolation(err):
		return missing
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
