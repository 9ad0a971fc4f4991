// audit.go
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
	"time"
)

// Audit actions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AuditEntry records one committed catalog change together with a JSON snapshot of the entity
type AuditEntry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ChangeID  string    `gorm:"type:char(36);not null;uniqueIndex" json:"change_id"`
	Kind      Kind      `gorm:"size:20;not null;index:idx_audit_entity" json:"kind"`
	EntityID  uint64    `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	Action    string    `gorm:"size:10;not null" json:"action"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	Snapshot  JSON      `json:"snapshot"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for AuditEntry
func (AuditEntry) TableName() string {
	return "audit_log"
}
