// attributes_test.go
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
	"testing"

	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/shopspring/decimal"
)

func TestCementItemAcceptsCementRejectsSand(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Cement", "Maple Leaf", "OPC Bag")

	cement := cementSpec(item.ID)
	if err := CreateAttributes(db, ExactCategoryPolicy, cement); err != nil {
		t.Fatalf("cement attributes: %v", err)
	}
	if got := models.AttributesLabel(cement); got != "Cement Specs - OPC Bag" {
		t.Errorf("Label = %q", got)
	}

	err := CreateAttributes(db, ExactCategoryPolicy, sandSpec(item.ID))
	var mismatch *CategoryMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CategoryMismatchError, got %v", err)
	}
	if mismatch.Expected != "Sand" || mismatch.Actual != "Cement" {
		t.Errorf("mismatch = %+v", mismatch)
	}
	if n := count(t, db, &models.SandAttributes{}); n != 0 {
		t.Errorf("sand attributes = %d, want 0", n)
	}
}

func TestItemWithoutBrandSkipsCategoryCheck(t *testing.T) {
	item := &models.Item{Name: "Loose Item"}
	for _, kind := range models.AttributeKinds {
		attrs, err := models.NewAttributes(kind)
		if err != nil {
			t.Fatalf("NewAttributes(%s): %v", kind, err)
		}
		if err := ValidateCategory(attrs, item); err != nil {
			t.Errorf("%s: unexpected error %v", kind, err)
		}
	}
	if err := ValidateCategory(sandSpec(0), nil); err != nil {
		t.Errorf("nil item: unexpected error %v", err)
	}
	brandOnly := &models.Item{Name: "x", Brand: &models.Brand{Name: "b"}}
	if err := ValidateCategory(sandSpec(0), brandOnly); err != nil {
		t.Errorf("unloaded category: unexpected error %v", err)
	}
}

// The Brick table expects the category "Brick" while the catalog and the item
// picker use "Bricks"; exact matching rejects it.
func TestBrickOnBricksCategoryExactMode(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Bricks", "Kiln Co", "Red Clay Brick")

	err := CreateAttributes(db, ExactCategoryPolicy, brickSpec(item.ID))
	var mismatch *CategoryMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CategoryMismatchError, got %v", err)
	}
	if mismatch.Expected != "Brick" || mismatch.Actual != "Bricks" {
		t.Errorf("mismatch = %+v", mismatch)
	}

	choices, err := AttributeChoices(db, models.KindBrick, ListOptions{})
	if err != nil {
		t.Fatalf("AttributeChoices: %v", err)
	}
	if len(choices) != 1 || choices[0].ID != item.ID {
		t.Errorf("choices = %v, want the Bricks item", choices)
	}
}

func TestBrickOnBricksCategoryNormalizedMode(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Bricks", "Kiln Co", "Red Clay Brick")
	policy := PolicyFromConfig(&config.Config{CategoryMatch: config.CategoryMatchNormalized})

	if err := CreateAttributes(db, policy, brickSpec(item.ID)); err != nil {
		t.Fatalf("normalized mode should accept Bricks: %v", err)
	}
}

func TestCategoryPolicyMatches(t *testing.T) {
	normalized := CategoryPolicy{Mode: config.CategoryMatchNormalized}
	tests := []struct {
		expected, actual string
		exact, norm      bool
	}{
		{"Cement", "Cement", true, true},
		{"Brick", "Bricks", false, true},
		{"Cable", "cables", false, true},
		{"Pipe", "Pipes ", false, true},
		{"Sand", "Cement", false, false},
		{"Steel", "steel", false, true},
	}
	for _, tt := range tests {
		if got := ExactCategoryPolicy.Matches(tt.expected, tt.actual); got != tt.exact {
			t.Errorf("exact %q/%q = %v, want %v", tt.expected, tt.actual, got, tt.exact)
		}
		if got := normalized.Matches(tt.expected, tt.actual); got != tt.norm {
			t.Errorf("normalized %q/%q = %v, want %v", tt.expected, tt.actual, got, tt.norm)
		}
	}
}

func TestOneAttributeRecordPerItem(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Cement", "Lucky", "Lucky OPC")
	if err := CreateAttributes(db, ExactCategoryPolicy, cementSpec(item.ID)); err != nil {
		t.Fatalf("first: %v", err)
	}

	err := CreateAttributes(db, ExactCategoryPolicy, cementSpec(item.ID))
	var uniq *UniquenessError
	if !errors.As(err, &uniq) {
		t.Fatalf("expected UniquenessError, got %v", err)
	}
}

func TestAttributesMissingItem(t *testing.T) {
	db := newTestDB(t)
	var missing *MissingReferenceError
	if err := CreateAttributes(db, ExactCategoryPolicy, cementSpec(0)); !errors.As(err, &missing) {
		t.Errorf("no item: expected MissingReferenceError, got %v", err)
	}
	if err := CreateAttributes(db, ExactCategoryPolicy, cementSpec(99)); !errors.As(err, &missing) {
		t.Errorf("unknown item: expected MissingReferenceError, got %v", err)
	}
}

func TestAttributesRoundTripAndUpdate(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Pipe", "Dadex", "PVC 4in")

	pipe := &models.PipeAttributes{
		PipeMaterial:    "PVC",
		NominalDiameter: decimal.RequireFromString("110.00"),
		LengthM:         decimal.RequireFromString("6.00"),
		PressureRating:  "PN10",
	}
	pipe.ItemID = item.ID
	if err := CreateAttributes(db, ExactCategoryPolicy, pipe); err != nil {
		t.Fatalf("CreateAttributes: %v", err)
	}

	got, err := GetAttributes(db, models.KindPipe, pipe.ID)
	if err != nil {
		t.Fatalf("GetAttributes: %v", err)
	}
	p := got.(*models.PipeAttributes)
	if p.DiameterUnit != "mm" {
		t.Errorf("DiameterUnit = %q, want mm", p.DiameterUnit)
	}
	if !p.NominalDiameter.Equal(pipe.NominalDiameter) || p.PressureRating != "PN10" {
		t.Errorf("values changed: %+v", p)
	}

	update := &models.PipeAttributes{
		PipeMaterial:    "uPVC",
		NominalDiameter: decimal.RequireFromString("4.00"),
		DiameterUnit:    "inch",
		LengthM:         decimal.RequireFromString("6.00"),
		PressureRating:  "PN16",
	}
	update.ItemID = item.ID
	if err := UpdateAttributes(db, ExactCategoryPolicy, pipe.ID, update); err != nil {
		t.Fatalf("UpdateAttributes: %v", err)
	}
	got, err = GetAttributes(db, models.KindPipe, pipe.ID)
	if err != nil {
		t.Fatalf("GetAttributes after update: %v", err)
	}
	p = got.(*models.PipeAttributes)
	if p.DiameterUnit != "inch" || p.PipeMaterial != "uPVC" {
		t.Errorf("update not applied: %+v", p)
	}

	list, err := ListAttributes(db, models.KindPipe, ListOptions{Query: "pvc"}, 0)
	if err != nil {
		t.Fatalf("ListAttributes: %v", err)
	}
	if len(list) != 1 || list[0].PrimaryKey() != pipe.ID {
		t.Errorf("list = %v", list)
	}

	if _, err := DeleteAttributes(db, models.KindPipe, pipe.ID); err != nil {
		t.Fatalf("DeleteAttributes: %v", err)
	}
	if _, err := GetAttributes(db, models.KindPipe, pipe.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if n := count(t, db, &models.Item{}); n != 1 {
		t.Errorf("deleting attributes must keep the item, items = %d", n)
	}
}

func TestValidateAttributesDryRun(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Sand", "Ravi", "Ravi Sand")

	if err := ValidateAttributes(db, ExactCategoryPolicy, sandSpec(item.ID)); err != nil {
		t.Errorf("valid sand attributes: %v", err)
	}
	var mismatch *CategoryMismatchError
	if err := ValidateAttributes(db, ExactCategoryPolicy, cementSpec(item.ID)); !errors.As(err, &mismatch) {
		t.Errorf("expected CategoryMismatchError, got %v", err)
	}
	if n := count(t, db, &models.SandAttributes{}); n != 0 {
		t.Errorf("dry run wrote %d rows", n)
	}
}
