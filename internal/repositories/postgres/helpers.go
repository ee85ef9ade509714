package postgres

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ApplyPaginationAndSort orders by a whitelisted column and applies limit/offset.
func ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]string, fallback string, limit, offset int) *gorm.DB {
	column, ok := allowed[sortBy]
	if !ok {
		column = fallback
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	query = query.Limit(limit)

	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
