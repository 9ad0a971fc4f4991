// resolve.go
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

	"github.com/localnerve/materials-catalog/internal/models"
	"gorm.io/gorm"
)

// EntityView is the uniform retrieval shape of any catalog record
type EntityView struct {
	Kind  models.Kind `json:"kind"`
	ID    uint64      `json:"id"`
	Label string      `json:"label"`
	Path  string      `json:"path"`
	Data  interface{} `json:"data"`
}

// ViewOf wraps a loaded entity with its display label and canonical path
func ViewOf(entity interface{}) (EntityView, error) {
	switch e := entity.(type) {
	case *models.Store:
		return EntityView{Kind: models.KindStore, ID: e.ID, Label: e.Label(), Path: e.Path(), Data: e}, nil
	case *models.Category:
		return EntityView{Kind: models.KindCategory, ID: e.ID, Label: e.Label(), Path: e.Path(), Data: e}, nil
	case *models.Brand:
		return EntityView{Kind: models.KindBrand, ID: e.ID, Label: e.Label(), Path: e.Path(), Data: e}, nil
	case *models.Item:
		return EntityView{Kind: models.KindItem, ID: e.ID, Label: e.Label(), Path: e.Path(), Data: e}, nil
	case *models.StoreItem:
		return EntityView{Kind: models.KindStoreItem, ID: e.ID, Label: e.Label(), Path: e.Path(), Data: e}, nil
	case models.Attributes:
		return EntityView{
			Kind:  e.Kind(),
			ID:    e.PrimaryKey(),
			Label: models.AttributesLabel(e),
			Path:  models.AttributesPath(e),
			Data:  e,
		}, nil
	}
	return EntityView{}, fmt.Errorf("no view for %T", entity)
}

// ViewsOf wraps every element of a loaded list
func ViewsOf[T any](entities []T) ([]EntityView, error) {
	views := make([]EntityView, 0, len(entities))
	for i := range entities {
		var v interface{} = entities[i]
		if _, isAttrs := v.(models.Attributes); !isAttrs {
			v = &entities[i]
		}
		view, err := ViewOf(v)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Resolve loads any entity by kind and identifier, backing "<kind>/<id>" deep links
func Resolve(db *gorm.DB, kind models.Kind, id uint64) (EntityView, error) {
	var (
		entity interface{}
		err    error
	)
	switch {
	case kind == models.KindStore:
		entity, err = GetStore(db, id)
	case kind == models.KindCategory:
		entity, err = GetCategory(db, id)
	case kind == models.KindBrand:
		entity, err = GetBrand(db, id)
	case kind == models.KindItem:
		entity, err = GetItem(db, id)
	case kind == models.KindStoreItem:
		entity, err = GetStoreItem(db, id)
	case kind.IsAttribute():
		entity, err = GetAttributes(db, kind, id)
	default:
		return EntityView{}, fmt.Errorf("unknown entity kind %q", kind)
	}
	if err != nil {
		return EntityView{}, err
	}
	return ViewOf(entity)
}

// ResolvePath resolves a "<kind>/<id>" path
func ResolvePath(db *gorm.DB, path string) (EntityView, error) {
	kind, id, err := models.ParseEntityPath(path)
	if err != nil {
		return EntityView{}, err
	}
	return Resolve(db, kind, id)
}
