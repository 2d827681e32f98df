// Package service contains the business logic for every feature module. Each
// method takes the active tenant id, resolves that tenant's database connection
// through the connection manager and runs its queries against it.
package service

import (
	"context"

	"gorm.io/gorm"
)

// ConnectionSource resolves a tenant id to that tenant's live database
// connection. Implemented by tenant.Manager.
type ConnectionSource interface {
	Get(ctx context.Context, tenantID string) (*gorm.DB, error)
}

// Page is the pagination envelope returned by every listing operation
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPage[T any](data []T, total int64, page, limit int) *Page[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// normalizePagination clamps page and limit to sane values
func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
