// helpers_test.go
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
	"path/filepath"
	"testing"

	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/database"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "catalog.db"),
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
	}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	if err := CreateCategory(db, c); err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func mustBrand(t *testing.T, db *gorm.DB, name string, categoryID uint64) *models.Brand {
	t.Helper()
	b := &models.Brand{Name: name, CategoryID: categoryID}
	if err := CreateBrand(db, b); err != nil {
		t.Fatalf("create brand %q: %v", name, err)
	}
	return b
}

func mustItem(t *testing.T, db *gorm.DB, name string, brandID uint64) *models.Item {
	t.Helper()
	i := &models.Item{Name: name, BrandID: brandID}
	if err := CreateItem(db, i); err != nil {
		t.Fatalf("create item %q: %v", name, err)
	}
	return i
}

func mustStore(t *testing.T, db *gorm.DB, name string) *models.Store {
	t.Helper()
	s := &models.Store{Name: name, Location: "Main Road"}
	if err := CreateStore(db, s); err != nil {
		t.Fatalf("create store %q: %v", name, err)
	}
	return s
}

func mustStoreItem(t *testing.T, db *gorm.DB, storeID, itemID uint64) *models.StoreItem {
	t.Helper()
	si := &models.StoreItem{
		StoreID:       storeID,
		ItemID:        itemID,
		Price:         decimal.RequireFromString("1250.50"),
		StockQuantity: decimal.NewFromInt(40),
		ReorderPoint:  decimal.NewFromInt(10),
	}
	if err := CreateStoreItem(db, si); err != nil {
		t.Fatalf("create store item: %v", err)
	}
	return si
}

// itemIn builds category -> brand -> item and returns the item
func itemIn(t *testing.T, db *gorm.DB, category, brand, item string) *models.Item {
	t.Helper()
	c := mustCategory(t, db, category)
	b := mustBrand(t, db, brand, c.ID)
	return mustItem(t, db, item, b.ID)
}

func cementSpec(itemID uint64) *models.CementAttributes {
	a := &models.CementAttributes{
		Grade:                  "OPC 53",
		WeightPerBagKg:         decimal.RequireFromString("50.00"),
		SettingTimeMin:         30,
		CompressiveStrengthMPa: decimal.RequireFromString("53.00"),
	}
	a.ItemID = itemID
	return a
}

func sandSpec(itemID uint64) *models.SandAttributes {
	a := &models.SandAttributes{
		SandType:       "River",
		GrainSizeMm:    decimal.RequireFromString("2.50"),
		SourceLocation: "Chenab",
	}
	a.ItemID = itemID
	return a
}

func brickSpec(itemID uint64) *models.BrickAttributes {
	a := &models.BrickAttributes{
		BrickType:              "Clay",
		DimensionsMm:           "230x110x75",
		CompressiveStrengthMPa: decimal.RequireFromString("10.50"),
		WaterAbsorptionPercent: decimal.RequireFromString("12.00"),
	}
	a.ItemID = itemID
	return a
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
