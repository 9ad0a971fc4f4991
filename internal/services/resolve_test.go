// resolve_test.go
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

	"github.com/localnerve/materials-catalog/internal/models"
)

func TestResolvePaths(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Cement", "Maple Leaf", "OPC Bag")
	store := mustStore(t, db, "Depot")
	si := mustStoreItem(t, db, store.ID, item.ID)
	cement := cementSpec(item.ID)
	if err := CreateAttributes(db, ExactCategoryPolicy, cement); err != nil {
		t.Fatalf("CreateAttributes: %v", err)
	}

	tests := []struct {
		path  string
		label string
	}{
		{models.EntityPath(models.KindStore, store.ID), "Depot"},
		{models.EntityPath(models.KindCategory, item.Brand.CategoryID), "Cement"},
		{models.EntityPath(models.KindBrand, item.BrandID), "Maple Leaf (Cement)"},
		{models.EntityPath(models.KindItem, item.ID), "OPC Bag (Maple Leaf)"},
		{models.EntityPath(models.KindStoreItem, si.ID), "Depot - OPC Bag"},
		{models.EntityPath(models.KindCement, cement.ID), "Cement Specs - OPC Bag"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			view, err := ResolvePath(db, tt.path)
			if err != nil {
				t.Fatalf("ResolvePath: %v", err)
			}
			if view.Label != tt.label {
				t.Errorf("Label = %q, want %q", view.Label, tt.label)
			}
			if view.Path != tt.path {
				t.Errorf("Path = %q, want %q", view.Path, tt.path)
			}
		})
	}

	if _, err := ResolvePath(db, "store/404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := ResolvePath(db, "widget/1"); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestViewsOf(t *testing.T) {
	stores := []models.Store{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	views, err := ViewsOf(stores)
	if err != nil {
		t.Fatalf("ViewsOf: %v", err)
	}
	if len(views) != 2 || views[1].Path != "store/2" || views[1].Label != "B" {
		t.Errorf("views = %+v", views)
	}

	attrs := []models.Attributes{sandSpec(3)}
	views, err = ViewsOf(attrs)
	if err != nil {
		t.Fatalf("ViewsOf attributes: %v", err)
	}
	if views[0].Kind != models.KindSand {
		t.Errorf("Kind = %q", views[0].Kind)
	}
}
