// attributes.go
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
	"gorm.io/gorm/schema"
)

type attributeFinder func(query *gorm.DB) ([]models.Attributes, error)

func findAttributes[T any, PT interface {
	*T
	models.Attributes
}](query *gorm.DB) ([]models.Attributes, error) {
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Attributes, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out, nil
}

var attributeFinders = map[models.Kind]attributeFinder{
	models.KindCement:   findAttributes[models.CementAttributes],
	models.KindSand:     findAttributes[models.SandAttributes],
	models.KindConcrete: findAttributes[models.ConcreteAttributes],
	models.KindBrick:    findAttributes[models.BrickAttributes],
	models.KindPipe:     findAttributes[models.PipeAttributes],
	models.KindSteel:    findAttributes[models.SteelAttributes],
	models.KindPaint:    findAttributes[models.PaintAttributes],
	models.KindCable:    findAttributes[models.CableAttributes],
}

func attributeTable(kind models.Kind) (string, error) {
	spec, ok := models.SpecFor(kind)
	if !ok {
		return "", fmt.Errorf("unknown attribute kind %q", kind)
	}
	return spec.New().(schema.Tabler).TableName(), nil
}

// loadAttributeItem loads the item an attribute record points at, with its brand and category
func loadAttributeItem(tx *gorm.DB, kind models.Kind, itemID uint64) (*models.Item, error) {
	if itemID == 0 {
		return nil, &MissingReferenceError{Entity: kind, Field: "item"}
	}
	var item models.Item
	if err := silent(tx).Preload("Brand.Category").First(&item, itemID).Error; err != nil {
		if notFound(err) == ErrNotFound {
			return nil, &MissingReferenceError{Entity: kind, Field: "item", ID: itemID}
		}
		return nil, err
	}
	return &item, nil
}

// ensureSingleAttributes enforces one record of a kind per item
func ensureSingleAttributes(tx *gorm.DB, attrs models.Attributes, selfID uint64) error {
	query := tx.Model(attrs).Where("item_id = ?", attrs.ItemRef())
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return uniqueAttributes(attrs)
	}
	return nil
}

func uniqueAttributes(attrs models.Attributes) *UniquenessError {
	return &UniquenessError{Entity: attrs.Kind(), Fields: []string{"item"}, Value: fmt.Sprintf("%d", attrs.ItemRef())}
}

// checkAttributes runs field checks, the item reference check and the category policy
func checkAttributes(tx *gorm.DB, policy CategoryPolicy, attrs models.Attributes) error {
	if err := checkFields(attrs.Kind(), attrs); err != nil {
		return err
	}
	item, err := loadAttributeItem(tx, attrs.Kind(), attrs.ItemRef())
	if err != nil {
		return err
	}
	return policy.Validate(attrs, item)
}

// ValidateAttributes is a dry run of the create checks; nothing is written
func ValidateAttributes(db *gorm.DB, policy CategoryPolicy, attrs models.Attributes) error {
	return checkAttributes(db, policy, attrs)
}

// GetAttributes retrieves one attribute record with its item, brand and category
func GetAttributes(db *gorm.DB, kind models.Kind, id uint64) (models.Attributes, error) {
	attrs, err := models.NewAttributes(kind)
	if err != nil {
		return nil, err
	}
	if err := silent(db).Preload("Item.Brand.Category").First(attrs, id).Error; err != nil {
		return nil, notFound(err)
	}
	return attrs, nil
}

// ListAttributes lists the records of one attribute kind, searching item names
func ListAttributes(db *gorm.DB, kind models.Kind, opts ListOptions, itemID uint64) ([]models.Attributes, error) {
	table, err := attributeTable(kind)
	if err != nil {
		return nil, err
	}
	query := listQuery(db, table, opts).
		Joins("JOIN items ON items.id = " + table + ".item_id")
	query = search(query, opts.Query, "items.name")
	if itemID != 0 {
		query = query.Where(table+".item_id = ?", itemID)
	}
	return attributeFinders[kind](query.Preload("Item.Brand.Category").Order(table + ".id"))
}

// AttributeChoices lists the items offered when picking the item of a new attribute record.
// Only items whose brand sits in the kind's advisory choice category are returned.
func AttributeChoices(db *gorm.DB, kind models.Kind, opts ListOptions) ([]models.Item, error) {
	spec, ok := models.SpecFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown attribute kind %q", kind)
	}
	var items []models.Item
	query := listQuery(db, "choices:"+string(kind), opts).
		Joins("JOIN brands ON brands.id = items.brand_id").
		Joins("JOIN categories ON categories.id = brands.category_id").
		Where("categories.name = ?", spec.ChoiceCategory)
	query = search(query, opts.Query, "items.name")
	err := query.Preload("Brand.Category").Order("items.name").Find(&items).Error
	return items, err
}

// CreateAttributes inserts an attribute record after the category check passes
func CreateAttributes(db *gorm.DB, policy CategoryPolicy, attrs models.Attributes) error {
	kind := attrs.Kind()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := checkAttributes(tx, policy, attrs); err != nil {
			return err
		}
		if err := ensureSingleAttributes(tx, attrs, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(attrs).Error; err != nil {
			return translateWriteError(err, uniqueAttributes(attrs),
				&MissingReferenceError{Entity: kind, Field: "item", ID: attrs.ItemRef()})
		}
		if err := tx.Preload("Item.Brand.Category").First(attrs, attrs.PrimaryKey()).Error; err != nil {
			return err
		}
		return recordAudit(tx, kind, attrs.PrimaryKey(), models.ActionCreate, models.AttributesLabel(attrs), attrs)
	})
}

// UpdateAttributes replaces an attribute record; the category check runs again
func UpdateAttributes(db *gorm.DB, policy CategoryPolicy, id uint64, attrs models.Attributes) error {
	kind := attrs.Kind()
	return db.Transaction(func(tx *gorm.DB) error {
		existing, err := models.NewAttributes(kind)
		if err != nil {
			return err
		}
		if err := database.LockForUpdate(silent(tx)).First(existing, id).Error; err != nil {
			return notFound(err)
		}
		if err := checkAttributes(tx, policy, attrs); err != nil {
			return err
		}
		if err := ensureSingleAttributes(tx, attrs, id); err != nil {
			return err
		}
		attrs.SetPrimaryKey(id)
		if err := tx.Omit(clause.Associations, "created_at").Save(attrs).Error; err != nil {
			return translateWriteError(err, uniqueAttributes(attrs), nil)
		}
		if err := tx.Preload("Item.Brand.Category").First(attrs, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, kind, id, models.ActionUpdate, models.AttributesLabel(attrs), attrs)
	})
}

// DeleteAttributes removes one attribute record
func DeleteAttributes(db *gorm.DB, kind models.Kind, id uint64) (models.Attributes, error) {
	attrs, err := models.NewAttributes(kind)
	if err != nil {
		return nil, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := silent(tx).Preload("Item").First(attrs, id).Error; err != nil {
			return notFound(err)
		}
		empty, _ := models.NewAttributes(kind)
		if err := tx.Delete(empty, id).Error; err != nil {
			return err
		}
		return recordAudit(tx, kind, id, models.ActionDelete, models.AttributesLabel(attrs), attrs)
	})
	if err != nil {
		return nil, err
	}
	return attrs, nil
}
