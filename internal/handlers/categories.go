// categories.go
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

// ListCategories handles GET /api/catalog/categories
// @Summary List categories
// @Description Categories ordered by name; q searches name
// @Tags Categories
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.ListResponseStruct
// @Router /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	opts := listOptions(c)
	categories, err := services.ListCategories(h.db(c), opts)
	if err != nil {
		return fail(c, err, "listCategories")
	}
	return respondList(c, categories, opts)
}

// GetCategory handles GET /api/catalog/categories/:id
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	category, err := services.GetCategory(h.db(c), id)
	if err != nil {
		return fail(c, err, "getCategory")
	}
	return respondView(c, fiber.StatusOK, category)
}

// CreateCategory handles POST /api/catalog/categories
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body CategoryInput true "Category"
// @Success 201 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	category := in.model()
	if err := services.CreateCategory(h.db(c), category); err != nil {
		return fail(c, err, "createCategory")
	}
	return h.written(c, fiber.StatusCreated, models.ActionCreate, category)
}

// UpdateCategory handles PUT /api/catalog/categories/:id
// @Summary Rename a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param body body CategoryInput true "Category"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "Invalid input")
	}
	category, err := services.UpdateCategory(h.db(c), id, in.model())
	if err != nil {
		return fail(c, err, "updateCategory")
	}
	return h.written(c, fiber.StatusOK, models.ActionUpdate, category)
}

// DeleteCategory handles DELETE /api/catalog/categories/:id
// @Summary Delete a category
// @Description Deletes the category with all of its brands, items, store items and attribute records
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	category, err := services.DeleteCategory(h.db(c), id)
	if err != nil {
		return fail(c, err, "deleteCategory")
	}
	return h.written(c, fiber.StatusOK, models.ActionDelete, category)
}

// ListCategoryBrands handles GET /api/catalog/categories/:id/brands
// @Summary List the brands of one category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/categories/{id}/brands [get]
func (h *CatalogHandler) ListCategoryBrands(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	if _, err := services.GetCategory(h.db(c), id); err != nil {
		return fail(c, err, "listCategoryBrands")
	}
	opts := listOptions(c)
	brands, err := services.ListBrands(h.db(c), opts, id)
	if err != nil {
		return fail(c, err, "listCategoryBrands")
	}
	return respondList(c, brands, opts)
}

// AddCategoryBrands handles POST /api/catalog/categories/:id/brands
// @Summary Add brands to a category
// @Description Accepts one brand or an array; category_id is taken from the path. All rows are created or none.
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param body body []BrandInput true "Brands"
// @Success 201 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/categories/{id}/brands [post]
func (h *CatalogHandler) AddCategoryBrands(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	var in types.FlexList[BrandInput]
	if err := c.BodyParser(&in); err != nil || len(in) == 0 {
		return badInput(c, "Invalid input")
	}

	var created []models.Brand
	err = h.db(c).Transaction(func(tx *gorm.DB) error {
		if _, err := services.GetCategory(tx, id); err != nil {
			return err
		}
		for _, row := range in.Records() {
			brand := row.model()
			brand.CategoryID = id
			if err := services.CreateBrand(tx, brand); err != nil {
				return err
			}
			created = append(created, *brand)
		}
		return nil
	})
	if err != nil {
		return fail(c, err, "addCategoryBrands")
	}
	return writtenList(h, c, created)
}
