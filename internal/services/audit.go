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

package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/localnerve/materials-catalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordAudit appends an audit row inside the caller's transaction
func recordAudit(tx *gorm.DB, kind models.Kind, id uint64, action, label string, snapshot interface{}) error {
	data, err := models.NewJSON(snapshot)
	if err != nil {
		return fmt.Errorf("audit snapshot: %w", err)
	}
	entry := models.AuditEntry{
		ChangeID: uuid.NewString(),
		Kind:     kind,
		EntityID: id,
		Action:   action,
		Label:    truncate(label, 255),
		Snapshot: data,
	}
	return tx.Create(&entry).Error
}

// ListAudit returns the newest audit entries, optionally restricted to one kind or one entity
func ListAudit(db *gorm.DB, kind models.Kind, entityID uint64, limit int) ([]models.AuditEntry, error) {
	query := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).Model(&models.AuditEntry{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if entityID != 0 {
		query = query.Where("entity_id = ?", entityID)
	}

	var entries []models.AuditEntry
	err := query.Order("id DESC").Limit(clampLimit(limit)).Find(&entries).Error
	return entries, err
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
