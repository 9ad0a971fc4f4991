// seed.go
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
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/localnerve/materials-catalog/internal/services"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Catalog is the YAML fixture layout: the category tree plus store inventory
type Catalog struct {
	Categories []Category `yaml:"categories"`
	Stores     []Store    `yaml:"stores"`
}

type Category struct {
	Name   string  `yaml:"name"`
	Brands []Brand `yaml:"brands"`
}

type Brand struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

type Item struct {
	Name       string      `yaml:"name"`
	Attributes *Attributes `yaml:"attributes"`
}

// Attributes names the attribute kind and its columns by their JSON names
type Attributes struct {
	Kind string                 `yaml:"kind"`
	Spec map[string]interface{} `yaml:"spec"`
}

type Store struct {
	Name     string  `yaml:"name"`
	Location string  `yaml:"location"`
	Stock    []Stock `yaml:"stock"`
}

type Stock struct {
	Item          string  `yaml:"item"`
	Price         string  `yaml:"price"`
	StockQuantity string  `yaml:"stock_quantity"`
	ReorderPoint  string  `yaml:"reorder_point"`
	SKU           *string `yaml:"sku"`
	Barcode       *string `yaml:"barcode"`
}

// Result counts what Apply created
type Result struct {
	Categories int `json:"categories"`
	Brands     int `json:"brands"`
	Items      int `json:"items"`
	Attributes int `json:"attributes"`
	Stores     int `json:"stores"`
	StoreItems int `json:"store_items"`
}

// Parse reads a YAML catalog
func Parse(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &catalog, nil
}

// ParseBytes reads a YAML catalog from memory
func ParseBytes(b []byte) (*Catalog, error) {
	return Parse(bytes.NewReader(b))
}

// Apply writes the catalog through the service layer in one transaction, so every
// uniqueness, reference and category rule applies. Nothing is written on error.
func Apply(db *gorm.DB, policy services.CategoryPolicy, catalog *Catalog) (*Result, error) {
	result := &Result{}
	err := db.Transaction(func(tx *gorm.DB) error {
		itemIDs := make(map[string]uint64)

		for _, c := range catalog.Categories {
			category := &models.Category{Name: c.Name}
			if err := services.CreateCategory(tx, category); err != nil {
				return fmt.Errorf("category %q: %w", c.Name, err)
			}
			result.Categories++

			for _, b := range c.Brands {
				brand := &models.Brand{Name: b.Name, CategoryID: category.ID}
				if err := services.CreateBrand(tx, brand); err != nil {
					return fmt.Errorf("brand %q: %w", b.Name, err)
				}
				result.Brands++

				for _, i := range b.Items {
					item := &models.Item{Name: i.Name, BrandID: brand.ID}
					if err := services.CreateItem(tx, item); err != nil {
						return fmt.Errorf("item %q: %w", i.Name, err)
					}
					itemIDs[item.Name] = item.ID
					result.Items++

					if i.Attributes == nil {
						continue
					}
					attrs, err := i.Attributes.build(item.ID)
					if err != nil {
						return fmt.Errorf("item %q: %w", i.Name, err)
					}
					if err := services.CreateAttributes(tx, policy, attrs); err != nil {
						return fmt.Errorf("item %q attributes: %w", i.Name, err)
					}
					result.Attributes++
				}
			}
		}

		for _, s := range catalog.Stores {
			store := &models.Store{Name: s.Name, Location: s.Location}
			if err := services.CreateStore(tx, store); err != nil {
				return fmt.Errorf("store %q: %w", s.Name, err)
			}
			result.Stores++

			for _, st := range s.Stock {
				itemID, ok := itemIDs[st.Item]
				if !ok {
					return fmt.Errorf("store %q stocks unknown item %q", s.Name, st.Item)
				}
				si, err := st.build(store.ID, itemID)
				if err != nil {
					return fmt.Errorf("store %q item %q: %w", s.Name, st.Item, err)
				}
				if err := services.CreateStoreItem(tx, si); err != nil {
					return fmt.Errorf("store %q item %q: %w", s.Name, st.Item, err)
				}
				result.StoreItems++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *Attributes) build(itemID uint64) (models.Attributes, error) {
	kind, err := models.ParseKind(a.Kind)
	if err != nil || !kind.IsAttribute() {
		return nil, fmt.Errorf("unknown attribute kind %q", a.Kind)
	}
	raw, err := json.Marshal(a.Spec)
	if err != nil {
		return nil, err
	}
	attrs, _ := models.NewAttributes(kind)
	if err := json.Unmarshal(raw, attrs); err != nil {
		return nil, fmt.Errorf("%s attributes: %w", kind, err)
	}
	attrs.SetItemRef(itemID)
	return attrs, nil
}

func (s *Stock) build(storeID, itemID uint64) (*models.StoreItem, error) {
	si := &models.StoreItem{StoreID: storeID, ItemID: itemID, SKU: s.SKU, Barcode: s.Barcode}
	fields := []struct {
		name  string
		value string
		dest  *decimal.Decimal
	}{
		{"price", s.Price, &si.Price},
		{"stock_quantity", s.StockQuantity, &si.StockQuantity},
		{"reorder_point", s.ReorderPoint, &si.ReorderPoint},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		d, err := decimal.NewFromString(f.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dest = d
	}
	return si, nil
}
