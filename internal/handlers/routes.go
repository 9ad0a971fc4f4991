// routes.go
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
)

// Register mounts the catalog routes on router. admin guards every mutating route and the audit log.
func (h *CatalogHandler) Register(router fiber.Router, admin fiber.Handler) {
	router.Get("/stores", h.ListStores)
	router.Post("/stores", admin, h.CreateStore)
	router.Get("/stores/:id", h.GetStore)
	router.Put("/stores/:id", admin, h.UpdateStore)
	router.Delete("/stores/:id", admin, h.DeleteStore)
	router.Get("/stores/:id/items", h.ListStoreInventory)
	router.Post("/stores/:id/items", admin, h.AddStoreInventory)

	router.Get("/categories", h.ListCategories)
	router.Post("/categories", admin, h.CreateCategory)
	router.Get("/categories/:id", h.GetCategory)
	router.Put("/categories/:id", admin, h.UpdateCategory)
	router.Delete("/categories/:id", admin, h.DeleteCategory)
	router.Get("/categories/:id/brands", h.ListCategoryBrands)
	router.Post("/categories/:id/brands", admin, h.AddCategoryBrands)

	router.Get("/brands", h.ListBrands)
	router.Post("/brands", admin, h.CreateBrand)
	router.Get("/brands/:id", h.GetBrand)
	router.Put("/brands/:id", admin, h.UpdateBrand)
	router.Delete("/brands/:id", admin, h.DeleteBrand)
	router.Get("/brands/:id/items", h.ListBrandItems)
	router.Post("/brands/:id/items", admin, h.AddBrandItems)

	router.Get("/items", h.ListItems)
	router.Post("/items", admin, h.CreateItem)
	router.Get("/items/:id", h.GetItem)
	router.Put("/items/:id", admin, h.UpdateItem)
	router.Delete("/items/:id", admin, h.DeleteItem)

	router.Get("/store-items", h.ListStoreItems)
	router.Post("/store-items", admin, h.CreateStoreItem)
	router.Get("/store-items/:id", h.GetStoreItem)
	router.Put("/store-items/:id", admin, h.UpdateStoreItem)
	router.Delete("/store-items/:id", admin, h.DeleteStoreItem)

	router.Get("/attributes/:kind/choices", h.AttributeChoices)
	router.Post("/attributes/:kind/validate", h.ValidateAttributes)
	router.Get("/attributes/:kind", h.ListAttributes)
	router.Post("/attributes/:kind", admin, h.CreateAttributes)
	router.Get("/attributes/:kind/:id", h.GetAttributes)
	router.Put("/attributes/:kind/:id", admin, h.UpdateAttributes)
	router.Delete("/attributes/:kind/:id", admin, h.DeleteAttributes)

	router.Get("/resolve/:kind/:id", h.Resolve)
	router.Get("/audit", admin, h.ListAudit)
}
