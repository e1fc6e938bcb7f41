package repository

import "gorm.io/gorm"

// applyPagination 按页码与页大小追加 Limit/Offset。
// pageSize 非法时不分页，页码最小按第一页处理。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
