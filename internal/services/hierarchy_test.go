// hierarchy_test.go
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
	"strings"
	"testing"

	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/shopspring/decimal"
)

func TestCreateStoreUniqueName(t *testing.T) {
	db := newTestDB(t)
	mustStore(t, db, "Lahore Depot")

	err := CreateStore(db, &models.Store{Name: "Lahore Depot"})
	var uniq *UniquenessError
	if !errors.As(err, &uniq) {
		t.Fatalf("expected UniquenessError, got %v", err)
	}
	if uniq.Entity != models.KindStore || uniq.Fields[0] != "name" {
		t.Errorf("unexpected error detail: %+v", uniq)
	}

	if err := CreateStore(db, &models.Store{Name: "Karachi Depot"}); err != nil {
		t.Fatalf("different name should succeed: %v", err)
	}
	if n := count(t, db, &models.Store{}); n != 2 {
		t.Errorf("stores = %d, want 2", n)
	}
}

func TestNamesAreCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	mustCategory(t, db, "Cement")

	if err := CreateCategory(db, &models.Category{Name: "cement"}); err != nil {
		t.Fatalf("differently cased name should succeed on sqlite: %v", err)
	}
}

func TestUpdateKeepsOwnName(t *testing.T) {
	db := newTestDB(t)
	s := mustStore(t, db, "Depot")
	mustStore(t, db, "Other")

	updated, err := UpdateStore(db, s.ID, &models.Store{Name: "Depot", Location: "Ring Road"})
	if err != nil {
		t.Fatalf("UpdateStore: %v", err)
	}
	if updated.Location != "Ring Road" {
		t.Errorf("Location = %q", updated.Location)
	}

	_, err = UpdateStore(db, s.ID, &models.Store{Name: "Other"})
	var uniq *UniquenessError
	if !errors.As(err, &uniq) {
		t.Fatalf("renaming onto another store should fail, got %v", err)
	}

	if _, err := UpdateStore(db, 999, &models.Store{Name: "Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreItemPairUnique(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Cement", "Maple Leaf", "OPC Bag")
	store := mustStore(t, db, "Depot")
	mustStoreItem(t, db, store.ID, item.ID)

	err := CreateStoreItem(db, &models.StoreItem{StoreID: store.ID, ItemID: item.ID})
	var uniq *UniquenessError
	if !errors.As(err, &uniq) {
		t.Fatalf("expected UniquenessError, got %v", err)
	}
	if len(uniq.Fields) != 2 {
		t.Errorf("Fields = %v, want store and item", uniq.Fields)
	}

	other := mustStore(t, db, "Other Depot")
	mustStoreItem(t, db, other.ID, item.ID)
}

func TestMissingReferences(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name string
		run  func() error
	}{
		{"brand without category", func() error { return CreateBrand(db, &models.Brand{Name: "B"}) }},
		{"brand with unknown category", func() error { return CreateBrand(db, &models.Brand{Name: "B", CategoryID: 42}) }},
		{"item without brand", func() error { return CreateItem(db, &models.Item{Name: "I"}) }},
		{"store item with unknown store", func() error {
			return CreateStoreItem(db, &models.StoreItem{StoreID: 7, ItemID: 8})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var missing *MissingReferenceError
			if err := tt.run(); !errors.As(err, &missing) {
				t.Fatalf("expected MissingReferenceError, got %v", err)
			}
		})
	}
}

func TestInvalidValues(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Cement", "Lucky", "Lucky OPC")
	store := mustStore(t, db, "Depot")
	longSKU := strings.Repeat("X", 51)

	tests := []struct {
		name  string
		si    models.StoreItem
		field string
	}{
		{"negative price", models.StoreItem{Price: decimal.NewFromInt(-1)}, "price"},
		{"too many places", models.StoreItem{StockQuantity: decimal.RequireFromString("1.005")}, "stock_quantity"},
		{"too many digits", models.StoreItem{ReorderPoint: decimal.RequireFromString("100000000")}, "reorder_point"},
		{"long sku", models.StoreItem{SKU: &longSKU}, "sku"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si := tt.si
			si.StoreID, si.ItemID = store.ID, item.ID
			err := CreateStoreItem(db, &si)
			var invalid *InvalidValueError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidValueError, got %v", err)
			}
			if invalid.Problems[0].Field != tt.field {
				t.Errorf("field = %q, want %q", invalid.Problems[0].Field, tt.field)
			}
		})
	}

	if err := CreateStore(db, &models.Store{}); err == nil {
		t.Error("empty store name should be rejected")
	}
}

func TestStoreItemRoundTrip(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Steel", "Amreli", "Rebar 12mm")
	store := mustStore(t, db, "Depot")
	sku, barcode := "AMR-12", "8964000123456"

	created := &models.StoreItem{
		StoreID:       store.ID,
		ItemID:        item.ID,
		Price:         decimal.RequireFromString("245.75"),
		StockQuantity: decimal.RequireFromString("120.50"),
		ReorderPoint:  decimal.NewFromInt(25),
		SKU:           &sku,
		Barcode:       &barcode,
	}
	if err := CreateStoreItem(db, created); err != nil {
		t.Fatalf("CreateStoreItem: %v", err)
	}

	got, err := GetStoreItem(db, created.ID)
	if err != nil {
		t.Fatalf("GetStoreItem: %v", err)
	}
	if !got.Price.Equal(created.Price) || !got.StockQuantity.Equal(created.StockQuantity) || !got.ReorderPoint.Equal(created.ReorderPoint) {
		t.Errorf("quantities changed: %v %v %v", got.Price, got.StockQuantity, got.ReorderPoint)
	}
	if got.SKU == nil || *got.SKU != sku || got.Barcode == nil || *got.Barcode != barcode {
		t.Errorf("identifiers changed: %v %v", got.SKU, got.Barcode)
	}
	if got.Label() != "Depot - Rebar 12mm" {
		t.Errorf("Label = %q", got.Label())
	}
	if got.Path() != models.EntityPath(models.KindStoreItem, created.ID) {
		t.Errorf("Path = %q", got.Path())
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := newTestDB(t)
	cement := mustCategory(t, db, "Cement")
	brand := mustBrand(t, db, "Maple Leaf", cement.ID)
	opc := mustItem(t, db, "OPC Bag", brand.ID)
	src := mustItem(t, db, "SRC Bag", brand.ID)
	store := mustStore(t, db, "Depot")
	mustStoreItem(t, db, store.ID, opc.ID)
	mustStoreItem(t, db, store.ID, src.ID)
	if err := CreateAttributes(db, ExactCategoryPolicy, cementSpec(opc.ID)); err != nil {
		t.Fatalf("CreateAttributes: %v", err)
	}

	// an unrelated branch survives
	sandItem := itemIn(t, db, "Sand", "Ravi", "Ravi Sand")
	mustStoreItem(t, db, store.ID, sandItem.ID)

	if _, err := DeleteCategory(db, cement.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	checks := []struct {
		name  string
		model interface{}
		want  int64
	}{
		{"categories", &models.Category{}, 1},
		{"brands", &models.Brand{}, 1},
		{"items", &models.Item{}, 1},
		{"store items", &models.StoreItem{}, 1},
		{"cement attributes", &models.CementAttributes{}, 0},
		{"stores", &models.Store{}, 1},
	}
	for _, c := range checks {
		if n := count(t, db, c.model); n != c.want {
			t.Errorf("%s = %d, want %d", c.name, n, c.want)
		}
	}
}

func TestDeleteBrandCascades(t *testing.T) {
	db := newTestDB(t)
	item := itemIn(t, db, "Paint", "Berger", "Weathercoat")
	store := mustStore(t, db, "Depot")
	mustStoreItem(t, db, store.ID, item.ID)

	deleted, err := DeleteBrand(db, item.BrandID)
	if err != nil {
		t.Fatalf("DeleteBrand: %v", err)
	}
	if deleted.Label() != "Berger (Paint)" {
		t.Errorf("Label = %q", deleted.Label())
	}
	if n := count(t, db, &models.Item{}); n != 0 {
		t.Errorf("items = %d, want 0", n)
	}
	if n := count(t, db, &models.StoreItem{}); n != 0 {
		t.Errorf("store items = %d, want 0", n)
	}
	if n := count(t, db, &models.Category{}); n != 1 {
		t.Errorf("categories = %d, want 1", n)
	}

	if _, err := DeleteBrand(db, item.BrandID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListOrderingAndSearch(t *testing.T) {
	db := newTestDB(t)
	for _, name := range []string{"Alpha", "Charlie", "Bravo"} {
		mustStore(t, db, name)
	}

	stores, err := ListStores(db, ListOptions{})
	if err != nil {
		t.Fatalf("ListStores: %v", err)
	}
	if len(stores) != 3 || stores[0].Name != "Charlie" || stores[2].Name != "Alpha" {
		t.Errorf("stores not ordered by name descending: %v", stores)
	}

	stores, err = ListStores(db, ListOptions{Query: "rav"})
	if err != nil {
		t.Fatalf("ListStores search: %v", err)
	}
	if len(stores) != 1 || stores[0].Name != "Bravo" {
		t.Errorf("search result = %v", stores)
	}

	stores, err = ListStores(db, ListOptions{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListStores page: %v", err)
	}
	if len(stores) != 1 || stores[0].Name != "Bravo" {
		t.Errorf("page result = %v", stores)
	}
}

func TestListItemsSearchesBrandName(t *testing.T) {
	db := newTestDB(t)
	c := mustCategory(t, db, "Cement")
	maple := mustBrand(t, db, "Maple Leaf", c.ID)
	lucky := mustBrand(t, db, "Lucky", c.ID)
	mustItem(t, db, "OPC Bag", maple.ID)
	mustItem(t, db, "SRC Bag", lucky.ID)

	items, err := ListItems(db, ListOptions{Query: "maple"}, 0)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].Name != "OPC Bag" {
		t.Fatalf("items = %v", items)
	}
	if items[0].Label() != "OPC Bag (Maple Leaf)" {
		t.Errorf("Label = %q", items[0].Label())
	}

	items, err = ListItems(db, ListOptions{}, lucky.ID)
	if err != nil {
		t.Fatalf("ListItems by brand: %v", err)
	}
	if len(items) != 1 || items[0].Name != "SRC Bag" {
		t.Errorf("items by brand = %v", items)
	}
}

func TestListStoreItemsOrder(t *testing.T) {
	db := newTestDB(t)
	c := mustCategory(t, db, "Cement")
	b := mustBrand(t, db, "Lucky", c.ID)
	first := mustItem(t, db, "First", b.ID)
	second := mustItem(t, db, "Second", b.ID)
	alpha := mustStore(t, db, "Alpha")
	zulu := mustStore(t, db, "Zulu")
	mustStoreItem(t, db, alpha.ID, second.ID)
	mustStoreItem(t, db, alpha.ID, first.ID)
	mustStoreItem(t, db, zulu.ID, first.ID)

	rows, err := ListStoreItems(db, ListOptions{}, 0, 0)
	if err != nil {
		t.Fatalf("ListStoreItems: %v", err)
	}
	want := []string{"Zulu - First", "Alpha - First", "Alpha - Second"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i].Label() != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i].Label(), want[i])
		}
	}

	rows, err = ListStoreItems(db, ListOptions{}, alpha.ID, first.ID)
	if err != nil {
		t.Fatalf("ListStoreItems filtered: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("filtered rows = %d, want 1", len(rows))
	}
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	mustStore(t, db, "PN_16 Depot")
	mustStore(t, db, "PNX16 Depot")
	mustStore(t, db, "50% Off Yard")
	mustStore(t, db, "500 Yard")

	tests := []struct {
		query string
		want  string
	}{
		{"pn_16", "PN_16 Depot"},
		{"50%", "50% Off Yard"},
	}
	for _, tt := range tests {
		stores, err := ListStores(db, ListOptions{Query: tt.query})
		if err != nil {
			t.Fatalf("ListStores(%q): %v", tt.query, err)
		}
		if len(stores) != 1 || stores[0].Name != tt.want {
			t.Errorf("ListStores(%q) = %v, want only %q", tt.query, stores, tt.want)
		}
	}
}
