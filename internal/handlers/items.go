// items.go
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

// ListItems handles GET /api/catalog/items
// @Summary List items
// @Description brand filters by brand id; q searches item and brand names
// @Tags Items
// @Produce json
// @Param brand query int false "Brand ID"
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	brandID, err := queryID(c, "brand")
	if err != nil {
		return badInput(c, err.Error())
	}
	opts := listOptions(c)
	items, err := services.ListItems(h.db(c), opts, brandID)
	if err != nil {
		return fail(c, err, "listItems")
	}
	return respondList(c, items, opts)
}

// GetItem handles GET /api/catalog/items/:id
// @Summary Get an item
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/items/{id} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	item, err := services.GetItem(h.db(c), id)
	if err != nil {
		return fail(c, err, "getItem")
	}
	return respondView(c, fiber.StatusOK, item)
}

// CreateItem handles POST /api/catalog/items
// @Summary Create an item
// @Tags Items
// @Accept json
// @Produce json
// @Param body body ItemInput true "Item"
// @Success 201 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/items [post]
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in ItemInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	item := in.model()
	if err := services.CreateItem(h.db(c), item); err != nil {
		return fail(c, err, "createItem")
	}
	return h.written(c, fiber.StatusCreated, models.ActionCreate, item)
}

// UpdateItem handles PUT /api/catalog/items/:id
// @Summary Update an item
// @Tags Items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param body body ItemInput true "Item"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/items/{id} [put]
func (h *CatalogHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in ItemInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	item, err := services.UpdateItem(h.db(c), id, in.model())
	if err != nil {
		return fail(c, err, "updateItem")
	}
	return h.written(c, fiber.StatusOK, models.ActionUpdate, item)
}

// DeleteItem handles DELETE /api/catalog/items/:id
// @Summary Delete an item
// @Description Deletes the item with its store items and attribute record
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/items/{id} [delete]
func (h *CatalogHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	item, err := services.DeleteItem(h.db(c), id)
	if err != nil {
		return fail(c, err, "deleteItem")
	}
	return h.written(c, fiber.StatusOK, models.ActionDelete, item)
}
