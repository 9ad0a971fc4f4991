// store_items.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/localnerve/materials-catalog/internal/services"
)

// ListStoreItems handles GET /api/catalog/store-items
// @Summary List store items
// @Description Ordered by store name descending then item; q searches item and store names
// @Tags StoreItems
// @Produce json
// @Param store query int false "Store ID"
// @Param item query int false "Item ID"
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/store-items [get]
func (h *CatalogHandler) ListStoreItems(c *fiber.Ctx) error {
	storeID, err := queryID(c, "store")
	if err != nil {
		return badInput(c, err.Error())
	}
	itemID, err := queryID(c, "item")
	if err != nil {
		return badInput(c, err.Error())
	}
	opts := listOptions(c)
	rows, err := services.ListStoreItems(h.db(c), opts, storeID, itemID)
	if err != nil {
		return fail(c, err, "listStoreItems")
	}
	return respondList(c, rows, opts)
}

// GetStoreItem handles GET /api/catalog/store-items/:id
// @Summary Get a store item
// @Tags StoreItems
// @Produce json
// @Param id path int true "Store item ID"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/store-items/{id} [get]
func (h *CatalogHandler) GetStoreItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	si, err := services.GetStoreItem(h.db(c), id)
	if err != nil {
		return fail(c, err, "getStoreItem")
	}
	return respondView(c, fiber.StatusOK, si)
}

// CreateStoreItem handles POST /api/catalog/store-items
// @Summary Stock an item in a store
// @Tags StoreItems
// @Accept json
// @Produce json
// @Param body body StoreItemInput true "Store item"
// @Success 201 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/store-items [post]
func (h *CatalogHandler) CreateStoreItem(c *fiber.Ctx) error {
	var in StoreItemInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	si := in.model()
	if err := services.CreateStoreItem(h.db(c), si); err != nil {
		return fail(c, err, "createStoreItem")
	}
	return h.written(c, fiber.StatusCreated, models.ActionCreate, si)
}

// UpdateStoreItem handles PUT /api/catalog/store-items/:id
// @Summary Update a store item
// @Tags StoreItems
// @Accept json
// @Produce json
// @Param id path int true "Store item ID"
// @Param body body StoreItemInput true "Store item"
// @Success 200 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/store-items/{id} [put]
func (h *CatalogHandler) UpdateStoreItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in StoreItemInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	si, err := services.UpdateStoreItem(h.db(c), id, in.model())
	if err != nil {
		return fail(c, err, "updateStoreItem")
	}
	return h.written(c, fiber.StatusOK, models.ActionUpdate, si)
}

// DeleteStoreItem handles DELETE /api/catalog/store-items/:id
// @Summary Delete a store item
// @Tags StoreItems
// @Produce json
// @Param id path int true "Store item ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/store-items/{id} [delete]
func (h *CatalogHandler) DeleteStoreItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	si, err := services.DeleteStoreItem(h.db(c), id)
	if err != nil {
		return fail(c, err, "deleteStoreItem")
	}
	return h.written(c, fiber.StatusOK, models.ActionDelete, si)
}
