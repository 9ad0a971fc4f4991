// auth_service.go
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

package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	authorizer "github.com/localnerve/authorizer-go"
	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/utils"
)

// SessionValidator checks an authorizer session cookie against a set of roles
type SessionValidator interface {
	ValidateSession(cookie string, roles []string) (*SessionInfo, error)
}

// SessionInfo is what a valid session yields
type SessionInfo struct {
	User interface{} `json:"user"`
}

// AuthorizerValidator validates admin sessions with an authorizer service
type AuthorizerValidator struct {
	cfg    *config.Config
	once   sync.Once
	client *authorizer.AuthorizerClient
	err    error
}

// NewAuthorizerValidator creates a validator; the client is built lazily on first use
func NewAuthorizerValidator(cfg *config.Config) *AuthorizerValidator {
	return &AuthorizerValidator{cfg: cfg}
}

// Init builds the authorizer client once. redirectURL is derived from the first request.
func (v *AuthorizerValidator) Init(requestProtocol, requestHost string) error {
	v.once.Do(func() {
		if err := utils.PingAuthorizer(context.Background(), v.cfg.AuthzURL); err != nil {
			v.err = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			v.cfg.AuthzURL, v.cfg.AuthzClientID, redirectURL)

		v.client, v.err = authorizer.NewAuthorizerClient(v.cfg.AuthzClientID, v.cfg.AuthzURL, redirectURL, nil)
		if v.err != nil {
			v.err = fmt.Errorf("failed to create authorizer client: %w", v.err)
		}
	})
	return v.err
}

// ValidateSession validates a session cookie for the given roles
func (v *AuthorizerValidator) ValidateSession(cookie string, roles []string) (*SessionInfo, error) {
	if v.client == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := v.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("session is not valid")
	}

	return &SessionInfo{User: res.User}, nil
}
