// flex.go
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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxBatch bounds the records accepted by one inline create
const MaxBatch = 500

var null = []byte("null")

// FlexID is a record identifier decoded from a JSON number or a numeric string.
// null and "" decode to zero, which the service layer reports as a missing reference.
type FlexID uint64

// UnmarshalJSON accepts 12, "12" and null
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, null) {
		*f = 0
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*f = 0
			return nil
		}
	}

	id, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("identifier must be a non-negative integer, got %s", data)
	}
	*f = FlexID(id)
	return nil
}

// MarshalJSON writes the identifier as a number
func (f FlexID) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(f), 10), nil
}

func (f FlexID) ID() uint64 {
	return uint64(f)
}

// FlexList decodes a single JSON object or an array of them, so inline create
// endpoints take one record or a batch.
type FlexList[T any] []T

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, null) {
		*f = nil
		return nil
	}

	if data[0] != '[' {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*f = FlexList[T]{one}
		return nil
	}

	var many []T
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	if len(many) > MaxBatch {
		return fmt.Errorf("batch of %d records exceeds the limit of %d", len(many), MaxBatch)
	}
	*f = many
	return nil
}

// Records returns the decoded records in request order
func (f FlexList[T]) Records() []T {
	return []T(f)
}
