// brands.go
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

// ListBrands handles GET /api/catalog/brands
// @Summary List brands
// @Description Brands ordered by name; category filters by category id, q searches name
// @Tags Brands
// @Produce json
// @Param category query int false "Category ID"
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/brands [get]
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	categoryID, err := queryID(c, "category")
	if err != nil {
		return badInput(c, err.Error())
	}
	opts := listOptions(c)
	brands, err := services.ListBrands(h.db(c), opts, categoryID)
	if err != nil {
		return fail(c, err, "listBrands")
	}
	return respondList(c, brands, opts)
}

// GetBrand handles GET /api/catalog/brands/:id
// @Summary Get a brand
// @Tags Brands
// @Produce json
// @Param id path int true "Brand ID"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/brands/{id} [get]
func (h *CatalogHandler) GetBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	brand, err := services.GetBrand(h.db(c), id)
	if err != nil {
		return fail(c, err, "getBrand")
	}
	return respondView(c, fiber.StatusOK, brand)
}

// CreateBrand handles POST /api/catalog/brands
// @Summary Create a brand
// @Tags Brands
// @Accept json
// @Produce json
// @Param body body BrandInput true "Brand"
// @Success 201 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/brands [post]
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var in BrandInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	brand := in.model()
	if err := services.CreateBrand(h.db(c), brand); err != nil {
		return fail(c, err, "createBrand")
	}
	return h.written(c, fiber.StatusCreated, models.ActionCreate, brand)
}

// UpdateBrand handles PUT /api/catalog/brands/:id
// @Summary Update a brand
// @Tags Brands
// @Accept json
// @Produce json
// @Param id path int true "Brand ID"
// @Param body body BrandInput true "Brand"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/brands/{id} [put]
func (h *CatalogHandler) UpdateBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in BrandInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	brand, err := services.UpdateBrand(h.db(c), id, in.model())
	if err != nil {
		return fail(c, err, "updateBrand")
	}
	return h.written(c, fiber.StatusOK, models.ActionUpdate, brand)
}

// DeleteBrand handles DELETE /api/catalog/brands/:id
// @Summary Delete a brand
// @Description Deletes the brand with its items and their store items and attribute records
// @Tags Brands
// @Produce json
// @Param id path int true "Brand ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/brands/{id} [delete]
func (h *CatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	brand, err := services.DeleteBrand(h.db(c), id)
	if err != nil {
		return fail(c, err, "deleteBrand")
	}
	return h.written(c, fiber.StatusOK, models.ActionDelete, brand)
}

// ListBrandItems handles GET /api/catalog/brands/:id/items
// @Summary List the items of one brand
// @Tags Brands
// @Produce json
// @Param id path int true "Brand ID"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/brands/{id}/items [get]
func (h *CatalogHandler) ListBrandItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	if _, err := services.GetBrand(h.db(c), id); err != nil {
		return fail(c, err, "listBrandItems")
	}
	opts := listOptions(c)
	items, err := services.ListItems(h.db(c), opts, id)
	if err != nil {
		return fail(c, err, "listBrandItems")
	}
	return respondList(c, items, opts)
}

// AddBrandItems handles POST /api/catalog/brands/:id/items
// @Summary Add items to a brand
// @Description Accepts one item or an array; brand_id is taken from the path. All rows are created or none.
// @Tags Brands
// @Accept json
// @Produce json
// @Param id path int true "Brand ID"
// @Param body body []ItemInput true "Items"
// @Success 201 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/brands/{id}/items [post]
func (h *CatalogHandler) AddBrandItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in types.FlexList[ItemInput]
	if err := c.BodyParser(&in); err != nil || len(in) == 0 {
		return badInput(c, "Invalid input")
	}

	var created []models.Item
	err = h.db(c).Transaction(func(tx *gorm.DB) error {
		if _, err := services.GetBrand(tx, id); err != nil {
			return err
		}
		for _, row := range in.Records() {
			item := row.model()
			item.BrandID = id
			if err := services.CreateItem(tx, item); err != nil {
				return err
			}
			created = append(created, *item)
		}
		return nil
	})
	if err != nil {
		return fail(c, err, "addBrandItems")
	}
	return writtenList(h, c, created)
}
