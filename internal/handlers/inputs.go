// inputs.go
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

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/localnerve/materials-catalog/internal/services"
	"github.com/localnerve/materials-catalog/internal/types"
	"github.com/shopspring/decimal"
)

// StoreInput is the writable part of a store
type StoreInput struct {
	Name     string `json:"name" example:"Lahore Depot"`
	Location string `json:"location" example:"Ferozepur Road"`
}

func (in StoreInput) model() *models.Store {
	return &models.Store{Name: in.Name, Location: in.Location}
}

// CategoryInput is the writable part of a category
type CategoryInput struct {
	Name string `json:"name" example:"Cement"`
}

func (in CategoryInput) model() *models.Category {
	return &models.Category{Name: in.Name}
}

// BrandInput is the writable part of a brand
type BrandInput struct {
	Name       string       `json:"name" example:"Maple Leaf"`
	CategoryID types.FlexID `json:"category_id" swaggertype:"integer"`
}

func (in BrandInput) model() *models.Brand {
	return &models.Brand{Name: in.Name, CategoryID: in.CategoryID.ID()}
}

// ItemInput is the writable part of an item
type ItemInput struct {
	Name    string       `json:"name" example:"OPC 50kg Bag"`
	BrandID types.FlexID `json:"brand_id" swaggertype:"integer"`
}

func (in ItemInput) model() *models.Item {
	return &models.Item{Name: in.Name, BrandID: in.BrandID.ID()}
}

// StoreItemInput is the writable part of a store item. Quantities accept numbers or strings.
type StoreItemInput struct {
	StoreID       types.FlexID    `json:"store_id" swaggertype:"integer"`
	ItemID        types.FlexID    `json:"item_id" swaggertype:"integer"`
	Price         decimal.Decimal `json:"price" swaggertype:"string" example:"1250.00"`
	StockQuantity decimal.Decimal `json:"stock_quantity" swaggertype:"string" example:"40"`
	ReorderPoint  decimal.Decimal `json:"reorder_point" swaggertype:"string" example:"10"`
	SKU           *string         `json:"sku"`
	Barcode       *string         `json:"barcode"`
}

func (in StoreItemInput) model() *models.StoreItem {
	return &models.StoreItem{
		StoreID:       in.StoreID.ID(),
		ItemID:        in.ItemID.ID(),
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		ReorderPoint:  in.ReorderPoint,
		SKU:           in.SKU,
		Barcode:       in.Barcode,
	}
}

// decodeAttributes reads an attribute record of kind from a JSON object.
// item_id may be a number or a string; server-managed fields are ignored.
// Unknown keys are rejected and every numeric column must be given.
func decodeAttributes(kind models.Kind, body []byte) (models.Attributes, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("body must be a JSON object: %w", err)
	}

	var itemID types.FlexID
	if raw, ok := fields["item_id"]; ok {
		if err := json.Unmarshal(raw, &itemID); err != nil {
			return nil, fmt.Errorf("item_id: %w", err)
		}
	}
	for _, key := range []string{"id", "item_id", "item", "created_at", "updated_at"} {
		delete(fields, key)
	}

	attrs, err := models.NewAttributes(kind)
	if err != nil {
		return nil, err
	}
	var missing []models.FieldProblem
	for _, name := range models.NumericFields(attrs) {
		if raw, ok := fields[name]; !ok || string(bytes.TrimSpace(raw)) == "null" {
			missing = append(missing, models.FieldProblem{Field: name, Reason: "is required"})
		}
	}
	if len(missing) > 0 {
		return nil, &services.InvalidValueError{Entity: kind, Problems: missing}
	}

	rest, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(rest))
	dec.DisallowUnknownFields()
	if err := dec.Decode(attrs); err != nil {
		return nil, fmt.Errorf("invalid %s attributes: %w", kind, err)
	}
	attrs.SetItemRef(itemID.ID())
	return attrs, nil
}
