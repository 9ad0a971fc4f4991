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

package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/localnerve/materials-catalog/internal/services"
	"github.com/localnerve/materials-catalog/internal/utils"
)

// Resolve handles GET /api/catalog/resolve/:kind/:id
// @Summary Retrieve any entity by its canonical path
// @Description Backs "<kind>/<id>" deep links. Responses are cached until the next write.
// @Tags Resolve
// @Produce json
// @Param kind path string true "Entity kind"
// @Param id path int true "Entity ID"
// @Success 200 {object} services.EntityView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/resolve/{kind}/{id} [get]
func (h *CatalogHandler) Resolve(c *fiber.Ctx) error {
	kind, err := models.ParseKind(c.Params("kind"))
	if err != nil {
		return utils.NotFoundResponse(c, err.Error())
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}

	key := models.EntityPath(kind, id)
	var cached services.EntityView
	generation, found, cacheErr := h.Cache.Get(c.UserContext(), key, &cached)
	if cacheErr != nil {
		log.Printf("cache get %s: %v", key, cacheErr)
	}
	if found {
		c.Set("X-Cache", "HIT")
		return c.Status(fiber.StatusOK).JSON(cached)
	}

	view, err := services.Resolve(h.db(c), kind, id)
	if err != nil {
		return fail(c, err, "resolve")
	}
	if cacheErr == nil {
		if err := h.Cache.Set(c.UserContext(), generation, key, view); err != nil {
			log.Printf("cache set %s: %v", key, err)
		}
	}
	c.Set("X-Cache", "MISS")
	return c.Status(fiber.StatusOK).JSON(view)
}

// ListAudit handles GET /api/catalog/audit
// @Summary Recent catalog changes
// @Tags Audit
// @Produce json
// @Param kind query string false "Entity kind"
// @Param id query int false "Entity ID"
// @Param limit query int false "Number of entries"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /catalog/audit [get]
func (h *CatalogHandler) ListAudit(c *fiber.Ctx) error {
	var kind models.Kind
	if raw := c.Query("kind"); raw != "" {
		k, err := models.ParseKind(raw)
		if err != nil {
			return badInput(c, err.Error())
		}
		kind = k
	}
	id, err := queryID(c, "id")
	if err != nil {
		return badInput(c, err.Error())
	}
	limit := c.QueryInt("limit", 0)
	entries, err := services.ListAudit(h.db(c), kind, id, limit)
	if err != nil {
		return fail(c, err, "listAudit")
	}
	return utils.ListResponse(c, fiber.StatusOK, entries, len(entries), limit, 0)
}
