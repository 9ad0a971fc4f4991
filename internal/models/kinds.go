// kinds.go
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

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names an entity kind in canonical retrieval paths ("<kind>/<id>")
type Kind string

const (
	KindStore     Kind = "store"
	KindCategory  Kind = "category"
	KindBrand     Kind = "brand"
	KindItem      Kind = "item"
	KindStoreItem Kind = "storeitem"

	KindCement   Kind = "cement"
	KindSand     Kind = "sand"
	KindConcrete Kind = "concrete"
	KindBrick    Kind = "brick"
	KindPipe     Kind = "pipe"
	KindSteel    Kind = "steel"
	KindPaint    Kind = "paint"
	KindCable    Kind = "cable"
)

// HierarchyKinds lists the kinds of the store/category/brand/item tree
var HierarchyKinds = []Kind{KindStore, KindCategory, KindBrand, KindItem, KindStoreItem}

// AttributeKinds lists the attribute extension kinds in display order
var AttributeKinds = []Kind{KindCement, KindSand, KindConcrete, KindBrick, KindPipe, KindSteel, KindPaint, KindCable}

// IsAttribute reports whether k names an attribute extension table
func (k Kind) IsAttribute() bool {
	_, ok := attributeSpecs[k]
	return ok
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	if k.IsAttribute() {
		return true
	}
	for _, h := range HierarchyKinds {
		if h == k {
			return true
		}
	}
	return false
}

// ParseKind accepts a kind name case-insensitively
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return k, nil
}

// EntityPath builds the canonical "<kind>/<id>" retrieval path
func EntityPath(kind Kind, id uint64) string {
	return string(kind) + "/" + strconv.FormatUint(id, 10)
}

// ParseEntityPath splits a "<kind>/<id>" path
func ParseEntityPath(path string) (Kind, uint64, error) {
	kindPart, idPart, found := strings.Cut(strings.Trim(path, "/"), "/")
	if !found {
		return "", 0, fmt.Errorf("invalid entity path %q", path)
	}
	kind, err := ParseKind(kindPart)
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return "", 0, fmt.Errorf("invalid entity id in path %q", path)
	}
	return kind, id, nil
}
