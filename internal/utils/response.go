// response.go
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

package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "catalog.notfound")
}

// ListResponse sends a page of entity views
func ListResponse(c *fiber.Ctx, status int, items interface{}, count, limit, offset int) error {
	return c.Status(status).JSON(fiber.Map{
		"ok":     true,
		"count":  count,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

// DeletedResponse confirms a delete; descendants were removed with the entity
func DeletedResponse(c *fiber.Ctx, kind, path, label string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Deleted",
		"ok":        true,
		"kind":      kind,
		"path":      path,
		"label":     label,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// ListResponseStruct defines the schema for list responses
type ListResponseStruct struct {
	Ok     bool          `json:"ok"`
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Items  []interface{} `json:"items"`
}

// DeletedResponseStruct defines the schema for delete responses
type DeletedResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Label     string `json:"label"`
	Timestamp string `json:"timestamp"`
}
