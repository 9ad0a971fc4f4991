// common.go
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
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/materials-catalog/internal/cache"
	"github.com/localnerve/materials-catalog/internal/events"
	"github.com/localnerve/materials-catalog/internal/models"
	"github.com/localnerve/materials-catalog/internal/services"
	"github.com/localnerve/materials-catalog/internal/utils"
	"gorm.io/gorm"
)

// Error types reported in the error envelope
const (
	errTypeInput     = "catalog.validation.input"
	errTypeUnique    = "catalog.validation.unique"
	errTypeCategory  = "catalog.validation.category"
	errTypeReference = "catalog.validation.reference"
)

// CatalogHandler serves the catalog admin API
type CatalogHandler struct {
	DB     *gorm.DB
	Policy services.CategoryPolicy
	Cache  cache.Cache
	Events events.Publisher
}

// NewCatalogHandler fills unset collaborators with no-op implementations
func NewCatalogHandler(db *gorm.DB, policy services.CategoryPolicy, c cache.Cache, p events.Publisher) *CatalogHandler {
	if c == nil {
		c = cache.Noop{}
	}
	if p == nil {
		p = events.Noop{}
	}
	if policy.Mode == "" {
		policy = services.ExactCategoryPolicy
	}
	return &CatalogHandler{DB: db, Policy: policy, Cache: c, Events: p}
}

func (h *CatalogHandler) db(c *fiber.Ctx) *gorm.DB {
	return h.DB.WithContext(c.UserContext())
}

// changed runs the post-commit side effects of a write. Failures are logged only.
func (h *CatalogHandler) changed(c *fiber.Ctx, action string, kind models.Kind, id uint64, label string) {
	ctx := c.UserContext()
	if err := h.Cache.Invalidate(ctx); err != nil {
		log.Printf("cache invalidate after %s %s: %v", action, models.EntityPath(kind, id), err)
	}
	if err := h.Events.Publish(ctx, events.NewEvent(action, kind, id, label)); err != nil {
		log.Printf("publish %s %s: %v", action, models.EntityPath(kind, id), err)
	}
}

func (h *CatalogHandler) changedView(c *fiber.Ctx, action string, view services.EntityView) {
	h.changed(c, action, view.Kind, view.ID, view.Label)
}

// fail maps service errors onto the error envelope
func fail(c *fiber.Ctx, err error, op string) error {
	var (
		uniq     *services.UniquenessError
		mismatch *services.CategoryMismatchError
		missing  *services.MissingReferenceError
		invalid  *services.InvalidValueError
	)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, fmt.Sprintf("[404] %s not found", c.Path()))
	case errors.As(err, &uniq):
		return utils.ErrorResponse(c, uniq.Error(), fiber.StatusConflict, errTypeUnique)
	case errors.As(err, &mismatch):
		return utils.ErrorResponse(c, mismatch.Error(), fiber.StatusUnprocessableEntity, errTypeCategory)
	case errors.As(err, &missing):
		return utils.ErrorResponse(c, missing.Error(), fiber.StatusUnprocessableEntity, errTypeReference)
	case errors.As(err, &invalid):
		return utils.ErrorResponse(c, invalid.Error(), fiber.StatusBadRequest, errTypeInput)
	}
	log.Printf("%s failed: %v", op, err)
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, op)
}

func badInput(c *fiber.Ctx, message string) error {
	return utils.ErrorResponse(c, message, fiber.StatusBadRequest, errTypeInput)
}

// paramID parses a positive identifier route parameter
func paramID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Params(name))
	}
	return id, nil
}

// queryID parses an optional identifier filter; absent means 0
func queryID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s filter %q", name, raw)
	}
	return id, nil
}

func listOptions(c *fiber.Ctx) services.ListOptions {
	return services.ListOptions{
		Query:  c.Query("q"),
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
}

func respondView(c *fiber.Ctx, status int, entity interface{}) error {
	view, err := services.ViewOf(entity)
	if err != nil {
		return fail(c, err, "catalog.view")
	}
	return c.Status(status).JSON(view)
}

func respondList[T any](c *fiber.Ctx, entities []T, opts services.ListOptions) error {
	views, err := services.ViewsOf(entities)
	if err != nil {
		return fail(c, err, "catalog.view")
	}
	return utils.ListResponse(c, fiber.StatusOK, views, len(views), opts.Limit, opts.Offset)
}

// written responds with the view of a committed write and runs the post-commit side effects
func (h *CatalogHandler) written(c *fiber.Ctx, status int, action string, entity interface{}) error {
	view, err := services.ViewOf(entity)
	if err != nil {
		return fail(c, err, "catalog.view")
	}
	h.changedView(c, action, view)
	if action == models.ActionDelete {
		return utils.DeletedResponse(c, string(view.Kind), view.Path, view.Label)
	}
	return c.Status(status).JSON(view)
}

// writtenList responds to an inline create of several children
func writtenList[T any](h *CatalogHandler, c *fiber.Ctx, entities []T) error {
	views, err := services.ViewsOf(entities)
	if err != nil {
		return fail(c, err, "catalog.view")
	}
	for _, view := range views {
		h.changedView(c, models.ActionCreate, view)
	}
	return utils.ListResponse(c, fiber.StatusCreated, views, len(views), 0, 0)
}
