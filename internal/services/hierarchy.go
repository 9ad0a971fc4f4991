// hierarchy.go
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
	"fmt"

	"github.com/localnerve/materials-catalog/internal/database"
	"github.com/localnerve/materials-catalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func silent(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// ensureParent fails with a MissingReferenceError unless the referenced row exists
func ensureParent(tx *gorm.DB, model interface{}, entity models.Kind, field string, id uint64) error {
	if id == 0 {
		return &MissingReferenceError{Entity: entity, Field: field}
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &MissingReferenceError{Entity: entity, Field: field, ID: id}
	}
	return nil
}

// ensureUniqueName checks the globally unique name column, ignoring the row being updated
func ensureUniqueName(tx *gorm.DB, model interface{}, kind models.Kind, name string, selfID uint64) error {
	query := tx.Model(model).Where("name = ?", name)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return uniqueName(kind, name)
	}
	return nil
}

func uniqueName(kind models.Kind, name string) *UniquenessError {
	return &UniquenessError{Entity: kind, Fields: []string{"name"}, Value: fmt.Sprintf("%q", name)}
}

// ---- Stores

// GetStore retrieves a store by identifier
func GetStore(db *gorm.DB, id uint64) (*models.Store, error) {
	var store models.Store
	if err := silent(db).First(&store, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &store, nil
}

// ListStores lists stores by name descending, searching name and location
func ListStores(db *gorm.DB, opts ListOptions) ([]models.Store, error) {
	var stores []models.Store
	query := search(listQuery(db, "stores", opts), opts.Query, "name", "location")
	err := query.Order("name DESC").Find(&stores).Error
	return stores, err
}

// CreateStore inserts a store with a unique name
func CreateStore(db *gorm.DB, store *models.Store) error {
	if err := checkFields(models.KindStore, store); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Store{}, models.KindStore, store.Name, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(store).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindStore, store.Name), nil)
		}
		return recordAudit(tx, models.KindStore, store.ID, models.ActionCreate, store.Label(), store)
	})
}

// UpdateStore replaces the editable store fields
func UpdateStore(db *gorm.DB, id uint64, input *models.Store) (*models.Store, error) {
	if err := checkFields(models.KindStore, input); err != nil {
		return nil, err
	}
	var store models.Store
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(silent(tx)).First(&store, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureUniqueName(tx, &models.Store{}, models.KindStore, input.Name, id); err != nil {
			return err
		}
		store.Name = input.Name
		store.Location = input.Location
		if err := tx.Omit(clause.Associations).Save(&store).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindStore, store.Name), nil)
		}
		return recordAudit(tx, models.KindStore, store.ID, models.ActionUpdate, store.Label(), &store)
	})
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// DeleteStore removes a store; its store items go with it through ON DELETE CASCADE
func DeleteStore(db *gorm.DB, id uint64) (*models.Store, error) {
	var store models.Store
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := silent(tx).First(&store, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&models.Store{}, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindStore, id, models.ActionDelete, store.Label(), &store)
	})
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// ---- Categories

// GetCategory retrieves a category by identifier
func GetCategory(db *gorm.DB, id uint64) (*models.Category, error) {
	var category models.Category
	if err := silent(db).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

// ListCategories lists categories by name, searching name
func ListCategories(db *gorm.DB, opts ListOptions) ([]models.Category, error) {
	var categories []models.Category
	query := search(listQuery(db, "categories", opts), opts.Query, "name")
	err := query.Order("name").Find(&categories).Error
	return categories, err
}

// CreateCategory inserts a category with a unique name
func CreateCategory(db *gorm.DB, category *models.Category) error {
	if err := checkFields(models.KindCategory, category); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Category{}, models.KindCategory, category.Name, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(category).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindCategory, category.Name), nil)
		}
		return recordAudit(tx, models.KindCategory, category.ID, models.ActionCreate, category.Label(), category)
	})
}

// UpdateCategory renames a category
func UpdateCategory(db *gorm.DB, id uint64, input *models.Category) (*models.Category, error) {
	if err := checkFields(models.KindCategory, input); err != nil {
		return nil, err
	}
	var category models.Category
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(silent(tx)).First(&category, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureUniqueName(tx, &models.Category{}, models.KindCategory, input.Name, id); err != nil {
			return err
		}
		category.Name = input.Name
		if err := tx.Omit(clause.Associations).Save(&category).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindCategory, category.Name), nil)
		}
		return recordAudit(tx, models.KindCategory, category.ID, models.ActionUpdate, category.Label(), &category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category together with its brands, items, store items and
// attribute records (ON DELETE CASCADE, one transaction)
func DeleteCategory(db *gorm.DB, id uint64) (*models.Category, error) {
	var category models.Category
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := silent(tx).First(&category, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindCategory, id, models.ActionDelete, category.Label(), &category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ---- Brands

// GetBrand retrieves a brand with its category
func GetBrand(db *gorm.DB, id uint64) (*models.Brand, error) {
	var brand models.Brand
	if err := silent(db).Preload("Category").First(&brand, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &brand, nil
}

// ListBrands lists brands by name, optionally inside one category
func ListBrands(db *gorm.DB, opts ListOptions, categoryID uint64) ([]models.Brand, error) {
	var brands []models.Brand
	query := search(listQuery(db, "brands", opts), opts.Query, "name")
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	err := query.Preload("Category").Order("name").Find(&brands).Error
	return brands, err
}

// CreateBrand inserts a brand under an existing category
func CreateBrand(db *gorm.DB, brand *models.Brand) error {
	if err := checkFields(models.KindBrand, brand); err != nil {
		return err
	}
	missing := &MissingReferenceError{Entity: models.KindBrand, Field: "category", ID: brand.CategoryID}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureParent(tx, &models.Category{}, models.KindBrand, "category", brand.CategoryID); err != nil {
			return err
		}
		if err := ensureUniqueName(tx, &models.Brand{}, models.KindBrand, brand.Name, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(brand).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindBrand, brand.Name), missing)
		}
		if err := tx.Preload("Category").First(brand, brand.ID).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindBrand, brand.ID, models.ActionCreate, brand.Label(), brand)
	})
}

// UpdateBrand renames or moves a brand
func UpdateBrand(db *gorm.DB, id uint64, input *models.Brand) (*models.Brand, error) {
	if err := checkFields(models.KindBrand, input); err != nil {
		return nil, err
	}
	var brand models.Brand
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(silent(tx)).First(&brand, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureParent(tx, &models.Category{}, models.KindBrand, "category", input.CategoryID); err != nil {
			return err
		}
		if err := ensureUniqueName(tx, &models.Brand{}, models.KindBrand, input.Name, id); err != nil {
			return err
		}
		brand.Name = input.Name
		brand.CategoryID = input.CategoryID
		if err := tx.Omit(clause.Associations).Save(&brand).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindBrand, brand.Name), nil)
		}
		if err := tx.Preload("Category").First(&brand, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindBrand, brand.ID, models.ActionUpdate, brand.Label(), &brand)
	})
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// DeleteBrand removes a brand and, through cascading keys, its items and their dependents
func DeleteBrand(db *gorm.DB, id uint64) (*models.Brand, error) {
	var brand models.Brand
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := silent(tx).Preload("Category").First(&brand, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&models.Brand{}, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindBrand, id, models.ActionDelete, brand.Label(), &brand)
	})
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// ---- Items

// GetItem retrieves an item with its brand and the brand's category
func GetItem(db *gorm.DB, id uint64) (*models.Item, error) {
	var item models.Item
	if err := silent(db).Preload("Brand.Category").First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// ListItems lists items, searching item and brand names, optionally inside one brand
func ListItems(db *gorm.DB, opts ListOptions, brandID uint64) ([]models.Item, error) {
	var items []models.Item
	query := listQuery(db, "items", opts).
		Joins("JOIN brands ON brands.id = items.brand_id")
	query = search(query, opts.Query, "items.name", "brands.name")
	if brandID != 0 {
		query = query.Where("items.brand_id = ?", brandID)
	}
	err := query.Preload("Brand.Category").Order("items.id").Find(&items).Error
	return items, err
}

// CreateItem inserts an item under an existing brand
func CreateItem(db *gorm.DB, item *models.Item) error {
	if err := checkFields(models.KindItem, item); err != nil {
		return err
	}
	missing := &MissingReferenceError{Entity: models.KindItem, Field: "brand", ID: item.BrandID}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureParent(tx, &models.Brand{}, models.KindItem, "brand", item.BrandID); err != nil {
			return err
		}
		if err := ensureUniqueName(tx, &models.Item{}, models.KindItem, item.Name, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindItem, item.Name), missing)
		}
		if err := tx.Preload("Brand.Category").First(item, item.ID).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindItem, item.ID, models.ActionCreate, item.Label(), item)
	})
}

// UpdateItem renames an item or moves it to another brand
func UpdateItem(db *gorm.DB, id uint64, input *models.Item) (*models.Item, error) {
	if err := checkFields(models.KindItem, input); err != nil {
		return nil, err
	}
	var item models.Item
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(silent(tx)).First(&item, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureParent(tx, &models.Brand{}, models.KindItem, "brand", input.BrandID); err != nil {
			return err
		}
		if err := ensureUniqueName(tx, &models.Item{}, models.KindItem, input.Name, id); err != nil {
			return err
		}
		item.Name = input.Name
		item.BrandID = input.BrandID
		if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
			return translateWriteError(err, uniqueName(models.KindItem, item.Name), nil)
		}
		if err := tx.Preload("Brand.Category").First(&item, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindItem, item.ID, models.ActionUpdate, item.Label(), &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item with its store items and attribute record
func DeleteItem(db *gorm.DB, id uint64) (*models.Item, error) {
	var item models.Item
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := silent(tx).Preload("Brand.Category").First(&item, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&models.Item{}, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindItem, id, models.ActionDelete, item.Label(), &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ---- Store items

func uniqueStoreItem(si *models.StoreItem) *UniquenessError {
	return &UniquenessError{
		Entity: models.KindStoreItem,
		Fields: []string{"store", "item"},
		Value:  fmt.Sprintf("(%d, %d)", si.StoreID, si.ItemID),
	}
}

func ensureStoreItemRefs(tx *gorm.DB, si *models.StoreItem, selfID uint64) error {
	if err := ensureParent(tx, &models.Store{}, models.KindStoreItem, "store", si.StoreID); err != nil {
		return err
	}
	if err := ensureParent(tx, &models.Item{}, models.KindStoreItem, "item", si.ItemID); err != nil {
		return err
	}
	query := tx.Model(&models.StoreItem{}).Where("store_id = ? AND item_id = ?", si.StoreID, si.ItemID)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return uniqueStoreItem(si)
	}
	return nil
}

// GetStoreItem retrieves a store item with its store and item
func GetStoreItem(db *gorm.DB, id uint64) (*models.StoreItem, error) {
	var si models.StoreItem
	if err := silent(db).Preload("Store").Preload("Item.Brand.Category").First(&si, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &si, nil
}

// ListStoreItems lists store items ordered by store (name descending) then item,
// searching item and store names
func ListStoreItems(db *gorm.DB, opts ListOptions, storeID, itemID uint64) ([]models.StoreItem, error) {
	var storeItems []models.StoreItem
	query := listQuery(db, "store_items", opts).
		Joins("JOIN stores ON stores.id = store_items.store_id").
		Joins("JOIN items ON items.id = store_items.item_id")
	query = search(query, opts.Query, "items.name", "stores.name")
	if storeID != 0 {
		query = query.Where("store_items.store_id = ?", storeID)
	}
	if itemID != 0 {
		query = query.Where("store_items.item_id = ?", itemID)
	}
	err := query.Preload("Store").Preload("Item.Brand.Category").
		Order("stores.name DESC").Order("store_items.item_id").
		Find(&storeItems).Error
	return storeItems, err
}

// CreateStoreItem stocks an item in a store; each (store, item) pair exists once
func CreateStoreItem(db *gorm.DB, si *models.StoreItem) error {
	if err := checkFields(models.KindStoreItem, si); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureStoreItemRefs(tx, si, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(si).Error; err != nil {
			return translateWriteError(err, uniqueStoreItem(si), &MissingReferenceError{Entity: models.KindStoreItem, Field: "store or item"})
		}
		if err := tx.Preload("Store").Preload("Item.Brand.Category").First(si, si.ID).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindStoreItem, si.ID, models.ActionCreate, si.Label(), si)
	})
}

// UpdateStoreItem replaces price, stock and identification fields, and may re-point the pair
func UpdateStoreItem(db *gorm.DB, id uint64, input *models.StoreItem) (*models.StoreItem, error) {
	if err := checkFields(models.KindStoreItem, input); err != nil {
		return nil, err
	}
	var si models.StoreItem
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(silent(tx)).First(&si, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureStoreItemRefs(tx, input, id); err != nil {
			return err
		}
		si.StoreID = input.StoreID
		si.ItemID = input.ItemID
		si.Price = input.Price
		si.StockQuantity = input.StockQuantity
		si.ReorderPoint = input.ReorderPoint
		si.SKU = input.SKU
		si.Barcode = input.Barcode
		if err := tx.Omit(clause.Associations).Save(&si).Error; err != nil {
			return translateWriteError(err, uniqueStoreItem(&si), nil)
		}
		if err := tx.Preload("Store").Preload("Item.Brand.Category").First(&si, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindStoreItem, si.ID, models.ActionUpdate, si.Label(), &si)
	})
	if err != nil {
		return nil, err
	}
	return &si, nil
}

// DeleteStoreItem removes one store item
func DeleteStoreItem(db *gorm.DB, id uint64) (*models.StoreItem, error) {
	var si models.StoreItem
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := silent(tx).Preload("Store").Preload("Item").First(&si, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&models.StoreItem{}, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, models.KindStoreItem, id, models.ActionDelete, si.Label(), &si)
	})
	if err != nil {
		return nil, err
	}
	return &si, nil
}
