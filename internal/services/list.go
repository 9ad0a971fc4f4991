// list.go
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
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// ListOptions carries the admin list controls: text search and paging
type ListOptions struct {
	Query  string
	Limit  int
	Offset int
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// listQuery starts a silent, tagged, paged read query
func listQuery(db *gorm.DB, tag string, opts ListOptions) *gorm.DB {
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Clauses(hints.CommentBefore("SELECT", "catalog:"+tag)).
		Limit(clampLimit(opts.Limit)).
		Offset(offset)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

// escapeLike makes text match literally inside a LIKE pattern using ! as the escape
func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}

// search adds a case-insensitive substring match over any of the given columns
func search(query *gorm.DB, text string, columns ...string) *gorm.DB {
	text = strings.TrimSpace(text)
	if text == "" || len(columns) == 0 {
		return query
	}

	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
