// attributes_test.go
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
	"reflect"
	"testing"
)

func TestNumericFields(t *testing.T) {
	tests := []struct {
		attrs Attributes
		want  []string
	}{
		{&SteelAttributes{}, []string{"diameter_mm", "tensile_strength_mpa"}},
		{&CableAttributes{}, []string{"cross_section_area_mm2", "voltage_rating_v"}},
		{&SandAttributes{}, []string{"grain_size_mm"}},
	}
	for _, tt := range tests {
		if got := NumericFields(tt.attrs); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("NumericFields(%s) = %v, want %v", tt.attrs.Kind(), got, tt.want)
		}
	}
}
