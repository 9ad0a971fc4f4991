// cache.go
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

package cache

import (
	"context"
)

// Cache stores rendered catalog reads. Writes bump a generation counter so every
// entry cached before the write becomes unreachable at once.
//
// Get reports the generation it looked in; a miss is filled by passing that same
// generation to Set, so a value read before a write is never stored after it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (generation int64, found bool, err error)
	Set(ctx context.Context, generation int64, key string, value interface{}) error
	Invalidate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Noop is used when no redis address is configured
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (int64, bool, error) { return 0, false, nil }
func (Noop) Set(context.Context, int64, string, interface{}) error        { return nil }
func (Noop) Invalidate(context.Context) error                             { return nil }
func (Noop) Ping(context.Context) error                                   { return nil }
func (Noop) Close() error                                                 { return nil }
