package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// applyFilter applies shared list filter options to a query. Zero values
// fall back to the given defaults.
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query
}
