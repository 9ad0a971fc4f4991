// stores.go
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
	"github.com/localnerve/materials-catalog/internal/types"
	"gorm.io/gorm"
)

// ListStores handles GET /api/catalog/stores
// @Summary List stores
// @Description Stores ordered by name descending; q searches name and location
// @Tags Stores
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalog/stores [get]
func (h *CatalogHandler) ListStores(c *fiber.Ctx) error {
	opts := listOptions(c)
	stores, err := services.ListStores(h.db(c), opts)
	if err != nil {
		return fail(c, err, "listStores")
	}
	return respondList(c, stores, opts)
}

// GetStore handles GET /api/catalog/stores/:id
// @Summary Get a store
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/stores/{id} [get]
func (h *CatalogHandler) GetStore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	store, err := services.GetStore(h.db(c), id)
	if err != nil {
		return fail(c, err, "getStore")
	}
	return respondView(c, fiber.StatusOK, store)
}

// CreateStore handles POST /api/catalog/stores
// @Summary Create a store
// @Tags Stores
// @Accept json
// @Produce json
// @Param body body StoreInput true "Store"
// @Success 201 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/stores [post]
func (h *CatalogHandler) CreateStore(c *fiber.Ctx) error {
	var in StoreInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	store := in.model()
	if err := services.CreateStore(h.db(c), store); err != nil {
		return fail(c, err, "createStore")
	}
	return h.written(c, fiber.StatusCreated, models.ActionCreate, store)
}

// UpdateStore handles PUT /api/catalog/stores/:id
// @Summary Update a store
// @Tags Stores
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param body body StoreInput true "Store"
// @Success 200 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/stores/{id} [put]
func (h *CatalogHandler) UpdateStore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in StoreInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	store, err := services.UpdateStore(h.db(c), id, in.model())
	if err != nil {
		return fail(c, err, "updateStore")
	}
	return h.written(c, fiber.StatusOK, models.ActionUpdate, store)
}

// DeleteStore handles DELETE /api/catalog/stores/:id
// @Summary Delete a store
// @Description Deletes the store and all of its store items
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/stores/{id} [delete]
func (h *CatalogHandler) DeleteStore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	store, err := services.DeleteStore(h.db(c), id)
	if err != nil {
		return fail(c, err, "deleteStore")
	}
	return h.written(c, fiber.StatusOK, models.ActionDelete, store)
}

// ListStoreInventory handles GET /api/catalog/stores/:id/items
// @Summary List the store items of one store
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Param q query string false "Search text"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/stores/{id}/items [get]
func (h *CatalogHandler) ListStoreInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	if _, err := services.GetStore(h.db(c), id); err != nil {
		return fail(c, err, "listStoreInventory")
	}
	opts := listOptions(c)
	rows, err := services.ListStoreItems(h.db(c), opts, id, 0)
	if err != nil {
		return fail(c, err, "listStoreInventory")
	}
	return respondList(c, rows, opts)
}

// AddStoreInventory handles POST /api/catalog/stores/:id/items
// @Summary Stock items in a store
// @Description Accepts one store item or an array; store_id is taken from the path. All rows are created or none.
// @Tags Stores
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param body body []StoreItemInput true "Store items"
// @Success 201 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/stores/{id}/items [post]
func (h *CatalogHandler) AddStoreInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in types.FlexList[StoreItemInput]
	if err := c.BodyParser(&in); err != nil || len(in) == 0 {
		return badInput(c, "Invalid input")
	}

	var created []models.StoreItem
	err = h.db(c).Transaction(func(tx *gorm.DB) error {
		if _, err := services.GetStore(tx, id); err != nil {
			return err
		}
		for _, row := range in.Records() {
			si := row.model()
			si.StoreID = id
			if err := services.CreateStoreItem(tx, si); err != nil {
				return err
			}
			created = append(created, *si)
		}
		return nil
	})
	if err != nil {
		return fail(c, err, "addStoreInventory")
	}
	return writtenList(h, c, created)
}
