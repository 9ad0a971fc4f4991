// ping.go
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
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// ProbeTimeout bounds a TCP reachability probe
const ProbeTimeout = 1500 * time.Millisecond

var defaultPorts = map[string]string{
	"http":     "80",
	"https":    "443",
	"redis":    "6379",
	"rediss":   "6379",
	"kafka":    "9092",
	"postgres": "5432",
	"mysql":    "3306",
}

// DialAddress resolves a service URL or a bare host:port to a dialable address
func DialAddress(service string) (string, error) {
	if !strings.Contains(service, "://") {
		if _, _, err := net.SplitHostPort(service); err != nil {
			return "", fmt.Errorf("invalid address %q: %w", service, err)
		}
		return service, nil
	}

	parsed, err := url.Parse(service)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("invalid URL %q: no host", service)
	}
	port := parsed.Port()
	if port == "" {
		if port = defaultPorts[parsed.Scheme]; port == "" {
			port = "80"
		}
	}
	return net.JoinHostPort(parsed.Hostname(), port), nil
}

// PingService opens and closes a TCP connection to the service
func PingService(ctx context.Context, service string, timeout time.Duration) error {
	address, err := DialAddress(service)
	if err != nil {
		return err
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(ctx context.Context, authzURL string) error {
	return PingService(ctx, authzURL, ProbeTimeout)
}
