// auth.go
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

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/materials-catalog/internal/services"
	"github.com/localnerve/materials-catalog/internal/types"
)

const adminErrorType = "catalog.authorization.admin"

// AuthAdmin validates that the request carries an admin session.
// A nil validator leaves the routes open (no AUTHZ_URL configured).
func AuthAdmin(validator services.SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if validator == nil {
			return c.Next()
		}
		if initer, ok := validator.(interface{ Init(string, string) error }); ok {
			if err := initer.Init(c.Protocol(), c.Hostname()); err != nil {
				return types.NewCustomError(fiber.StatusServiceUnavailable, adminErrorType, "Authorizer unavailable: %v", err)
			}
		}
		return authorize(c, validator, []string{"admin"}, adminErrorType)
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, validator services.SessionValidator, roles []string, errorType string) error {
	session := c.Cookies("cookie_session")
	if session == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Authorizer cookie \"cookie_session\" not found",
			Type:    errorType,
		}
	}

	info, err := validator.ValidateSession(session, roles)
	if err != nil {
		return types.NewCustomError(fiber.StatusForbidden, errorType, "Invalid session: %v", err)
	}

	c.Locals("user", info.User)
	return c.Next()
}
