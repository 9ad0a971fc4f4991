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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/localnerve/materials-catalog/internal/services"
	"github.com/localnerve/materials-catalog/internal/utils"
)

func attributeKind(c *fiber.Ctx) (models.Kind, error) {
	kind, err := models.ParseKind(c.Params("kind"))
	if err != nil || !kind.IsAttribute() {
		return "", fmt.Errorf("unknown attribute kind %q", c.Params("kind"))
	}
	return kind, nil
}

// ListAttributes handles GET /api/catalog/attributes/:kind
// @Summary List attribute records of one kind
// @Tags Attributes
// @Produce json
// @Param kind path string true "Attribute kind" Enums(cement, sand, concrete, brick, pipe, steel, paint, cable)
// @Param item query int false "Item ID"
// @Param q query string false "Search item names"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/attributes/{kind} [get]
func (h *CatalogHandler) ListAttributes(c *fiber.Ctx) error {
	kind, err := attributeKind(c)
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	itemID, err := queryID(c, "item")
	if err != nil {
		return badInput(c, err.Error())
	}
	opts := listOptions(c)
	records, err := services.ListAttributes(h.db(c), kind, opts, itemID)
	if err != nil {
		return fail(c, err, "listAttributes")
	}
	return respondList(c, records, opts)
}

// AttributeChoices handles GET /api/catalog/attributes/:kind/choices
// @Summary Items offered for a new attribute record
// @Description Items whose brand is in the advisory category of the kind
// @Tags Attributes
// @Produce json
// @Param kind path string true "Attribute kind"
// @Param q query string false "Search item names"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/attributes/{kind}/choices [get]
func (h *CatalogHandler) AttributeChoices(c *fiber.Ctx) error {
	kind, err := attributeKind(c)
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	opts := listOptions(c)
	items, err := services.AttributeChoices(h.db(c), kind, opts)
	if err != nil {
		return fail(c, err, "attributeChoices")
	}
	return respondList(c, items, opts)
}

// ValidateAttributes handles POST /api/catalog/attributes/:kind/validate
// @Summary Dry-run the attribute checks
// @Description Runs field, item reference and category checks without writing
// @Tags Attributes
// @Accept json
// @Produce json
// @Param kind path string true "Attribute kind"
// @Param body body object true "Attribute record"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /catalog/attributes/{kind}/validate [post]
func (h *CatalogHandler) ValidateAttributes(c *fiber.Ctx) error {
	kind, err := attributeKind(c)
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	attrs, err := decodeAttributes(kind, c.Body())
	if err != nil {
		return badInput(c, err.Error())
	}
	if err := services.ValidateAttributes(h.db(c), h.Policy, attrs); err != nil {
		return fail(c, err, "validateAttributes")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":             true,
		"kind":           kind,
		"category_match": h.Policy.Mode,
	})
}

// GetAttributes handles GET /api/catalog/attributes/:kind/:id
// @Summary Get an attribute record
// @Tags Attributes
// @Produce json
// @Param kind path string true "Attribute kind"
// @Param id path int true "Record ID"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/attributes/{kind}/{id} [get]
func (h *CatalogHandler) GetAttributes(c *fiber.Ctx) error {
	kind, err := attributeKind(c)
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	attrs, err := services.GetAttributes(h.db(c), kind, id)
	if err != nil {
		return fail(c, err, "getAttributes")
	}
	return respondView(c, fiber.StatusOK, attrs)
}

// CreateAttributes handles POST /api/catalog/attributes/:kind
// @Summary Create an attribute record
// @Description The item must belong to the category of the kind (via its brand)
// @Tags Attributes
// @Accept json
// @Produce json
// @Param kind path string true "Attribute kind"
// @Param body body object true "Attribute record"
// @Success 201 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/attributes/{kind} [post]
func (h *CatalogHandler) CreateAttributes(c *fiber.Ctx) error {
	kind, err := attributeKind(c)
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	attrs, err := decodeAttributes(kind, c.Body())
	if err != nil {
		return badInput(c, err.Error())
	}
	if err := services.CreateAttributes(h.db(c), h.Policy, attrs); err != nil {
		return fail(c, err, "createAttributes")
	}
	return h.written(c, fiber.StatusCreated, models.ActionCreate, attrs)
}

// UpdateAttributes handles PUT /api/catalog/attributes/:kind/:id
// @Summary Replace an attribute record
// @Tags Attributes
// @Accept json
// @Produce json
// @Param kind path string true "Attribute kind"
// @Param id path int true "Record ID"
// @Param body body object true "Attribute record"
// @Success 200 {object} services.EntityView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/attributes/{kind}/{id} [put]
func (h *CatalogHandler) UpdateAttributes(c *fiber.Ctx) error {
	kind, err := attributeKind(c)
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	attrs, err := decodeAttributes(kind, c.Body())
	if err != nil {
		return badInput(c, err.Error())
	}
	if err := services.UpdateAttributes(h.db(c), h.Policy, id, attrs); err != nil {
		return fail(c, err, "updateAttributes")
	}
	return h.written(c, fiber.StatusOK, models.ActionUpdate, attrs)
}

// DeleteAttributes handles DELETE /api/catalog/attributes/:kind/:id
// @Summary Delete an attribute record
// @Tags Attributes
// @Produce json
// @Param kind path string true "Attribute kind"
// @Param id path int true "Record ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/attributes/{kind}/{id} [delete]
func (h *CatalogHandler) DeleteAttributes(c *fiber.Ctx) error {
	kind, err := attributeKind(c)
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	attrs, err := services.DeleteAttributes(h.db(c), kind, id)
	if err != nil {
		return fail(c, err, "deleteAttributes")
	}
	return h.written(c, fiber.StatusOK, models.ActionDelete, attrs)
}
