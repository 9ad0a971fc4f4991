// cache_test.go
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
	"testing"

	"github.com/localnerve/materials-catalog/internal/config"
)

func TestNewWithoutAddressIsNoop(t *testing.T) {
	c := New(&config.Config{})
	if _, ok := c.(Noop); !ok {
		t.Fatalf("New = %T, want Noop", c)
	}

	ctx := context.Background()
	if err := c.Set(ctx, 0, "store/1", map[string]string{"name": "Depot"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var dest map[string]string
	_, found, err := c.Get(ctx, "store/1", &dest)
	if err != nil || found {
		t.Errorf("Get = %v, %v; want miss", found, err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Errorf("Invalidate: %v", err)
	}
}

func TestEntryKey(t *testing.T) {
	if got := entryKey(3, "brand/7"); got != "catalog:3:brand/7" {
		t.Errorf("entryKey = %q", got)
	}
}
