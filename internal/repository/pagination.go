package repository

import "strings"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageWindow normalises page/pageSize and returns limit and offset.
func pageWindow(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// orderClause validates sortBy against an allowlist, falling back to fallback.
func orderClause(sortBy, sortOrder, fallback, fallbackOrder string, allowed map[string]string) string {
	column, ok := allowed[sortBy]
	if !ok {
		column = allowed[fallback]
		sortOrder = fallbackOrder
	}
	order := strings.ToUpper(sortOrder)
	if order != "ASC" && order != "DESC" {
		order = fallbackOrder
	}
	return column + " " + order
}
