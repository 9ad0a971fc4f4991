// seed_test.go
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

package seed

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localnerve/materials-catalog/data"
	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/database"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/localnerve/materials-catalog/internal/services"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "seed.db"),
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

func TestApplyEmbeddedCatalog(t *testing.T) {
	db := setupTestDB(t)

	catalog, err := ParseBytes(data.SeedCatalog)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result, err := Apply(db, services.ExactCategoryPolicy, catalog)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if result.Categories != len(catalog.Categories) {
		t.Errorf("categories = %d, want %d", result.Categories, len(catalog.Categories))
	}
	if result.Stores != 2 || result.StoreItems != 5 {
		t.Errorf("stores = %d, store items = %d", result.Stores, result.StoreItems)
	}
	if result.Attributes != 5 {
		t.Errorf("attributes = %d, want 5", result.Attributes)
	}

	var cement []models.CementAttributes
	if err := db.Find(&cement).Error; err != nil {
		t.Fatalf("find cement: %v", err)
	}
	if len(cement) != 2 {
		t.Errorf("cement rows = %d, want 2", len(cement))
	}
}

func TestApplyRollsBackOnCategoryMismatch(t *testing.T) {
	db := setupTestDB(t)

	catalog, err := Parse(strings.NewReader(`
categories:
  - name: Bricks
    brands:
      - name: Kiln Co
        items:
          - name: Red Clay Brick
            attributes:
              kind: brick
              spec:
                brick_type: Clay
                dimensions_mm: 230x110x75
                compressive_strength_mpa: "10.00"
                water_absorption_percent: "12.00"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	_, err = Apply(db, services.ExactCategoryPolicy, catalog)
	var mismatch *services.CategoryMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected category mismatch, got %v", err)
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 0 {
		t.Errorf("categories after rollback = %d, want 0", count)
	}
}

func TestApplyUnknownStockItem(t *testing.T) {
	db := setupTestDB(t)

	catalog := &Catalog{
		Stores: []Store{{Name: "Depot", Stock: []Stock{{Item: "Nothing", Price: "1.00"}}}},
	}
	if _, err := Apply(db, services.ExactCategoryPolicy, catalog); err == nil {
		t.Fatal("expected error for unknown item")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("categories:\n  - name: Cement\n    colour: grey\n"))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}
