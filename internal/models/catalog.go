// catalog.go
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
	"time"

	"github.com/shopspring/decimal"
)

// Store is a physical store location that stocks catalog items
type Store struct {
	ID         uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string      `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Location   string      `gorm:"size:255;not null;default:''" json:"location"`
	StoreItems []StoreItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"store_items,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Category groups brands of one kind of material (Cement, Bricks, Pipes, ...)
type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Brands    []Brand   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"brands,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Brand belongs to exactly one category
type Brand struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CategoryID uint64    `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`
	Items      []Item    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Item is a sellable catalog entry made by a brand
type Item struct {
	ID         uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string      `gorm:"size:150;not null;uniqueIndex" json:"name"`
	BrandID    uint64      `gorm:"not null;index" json:"brand_id"`
	Brand      *Brand      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"brand,omitempty"`
	StoreItems []StoreItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"store_items,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// StoreItem holds the price and stock facts of an item in one store
type StoreItem struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID       uint64          `gorm:"not null;index:idx_store_item,unique" json:"store_id"`
	ItemID        uint64          `gorm:"not null;index:idx_store_item,unique" json:"item_id"`
	Store         *Store          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"store,omitempty"`
	Item          *Item           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"stock_quantity"`
	ReorderPoint  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"reorder_point"`
	SKU           *string         `gorm:"size:50" json:"sku"`
	Barcode       *string         `gorm:"size:50" json:"barcode"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName overrides the table name for Store
func (Store) TableName() string {
	return "stores"
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// TableName overrides the table name for Brand
func (Brand) TableName() string {
	return "brands"
}

// TableName overrides the table name for Item
func (Item) TableName() string {
	return "items"
}

// TableName overrides the table name for StoreItem
func (StoreItem) TableName() string {
	return "store_items"
}

// Label returns the display label of the store
func (s *Store) Label() string {
	return s.Name
}

// Label returns the display label of the category
func (c *Category) Label() string {
	return c.Name
}

// Label renders "name (category name)".
// The category must be loaded; an unloaded category renders empty parentheses.
func (b *Brand) Label() string {
	categoryName := ""
	if b.Category != nil {
		categoryName = b.Category.Name
	}
	return fmt.Sprintf("%s (%s)", b.Name, categoryName)
}

// Label renders "name (brand name)", or "name (No Brand)" while the brand is unassigned
func (i *Item) Label() string {
	if i.Brand == nil {
		return fmt.Sprintf("%s (No Brand)", i.Name)
	}
	return fmt.Sprintf("%s (%s)", i.Name, i.Brand.Name)
}

// Label renders "store name - item name"
func (si *StoreItem) Label() string {
	storeName, itemName := "", ""
	if si.Store != nil {
		storeName = si.Store.Name
	}
	if si.Item != nil {
		itemName = si.Item.Name
	}
	return fmt.Sprintf("%s - %s", storeName, itemName)
}

// Path returns the canonical retrieval path of the store
func (s *Store) Path() string {
	return EntityPath(KindStore, s.ID)
}

// Path returns the canonical retrieval path of the category
func (c *Category) Path() string {
	return EntityPath(KindCategory, c.ID)
}

// Path returns the canonical retrieval path of the brand
func (b *Brand) Path() string {
	return EntityPath(KindBrand, b.ID)
}

// Path returns the canonical retrieval path of the item
func (i *Item) Path() string {
	return EntityPath(KindItem, i.ID)
}

// Path returns the canonical retrieval path of the store item
func (si *StoreItem) Path() string {
	return EntityPath(KindStoreItem, si.ID)
}

// CategoryName resolves item.brand.category.name.
// ok is false when the brand or its category is not assigned or not loaded.
func (i *Item) CategoryName() (name string, ok bool) {
	if i == nil || i.Brand == nil || i.Brand.Category == nil {
		return "", false
	}
	return i.Brand.Category.Name, true
}
