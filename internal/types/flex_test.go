// flex_test.go
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
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestFlexID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{`12`, 12, false},
		{`"12"`, 12, false},
		{`" 7 "`, 7, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`-1`, 0, true},
		{`"abc"`, 0, true},
		{`1.5`, 0, true},
	}
	for _, tt := range tests {
		var got struct {
			ID FlexID `json:"id"`
		}
		err := json.Unmarshal([]byte(`{"id":`+tt.in+`}`), &got)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got.ID.ID() != tt.want {
			t.Errorf("%s: id = %d, want %d", tt.in, got.ID.ID(), tt.want)
		}
	}
}

func TestFlexList(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}

	var one FlexList[row]
	if err := json.Unmarshal([]byte(`{"name":"Lucky"}`), &one); err != nil {
		t.Fatalf("single: %v", err)
	}
	if len(one) != 1 || one.Records()[0].Name != "Lucky" {
		t.Errorf("single = %+v", one)
	}

	var many FlexList[row]
	if err := json.Unmarshal([]byte(`[{"name":"a"},{"name":"b"}]`), &many); err != nil {
		t.Fatalf("array: %v", err)
	}
	if len(many) != 2 || many[1].Name != "b" {
		t.Errorf("array = %+v", many)
	}

	rows := make([]string, MaxBatch+1)
	for i := range rows {
		rows[i] = fmt.Sprintf(`{"name":"n%d"}`, i)
	}
	var tooMany FlexList[row]
	if err := json.Unmarshal([]byte("["+strings.Join(rows, ",")+"]"), &tooMany); err == nil {
		t.Error("expected batch limit error")
	}
}
