// Package repository holds the gorm-backed data access for every resource.
// Org-scoped lookups always take the organization id and filter by it.
package repository

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// ErrInUse is returned when a delete is blocked by rows that must be kept
var ErrInUse = errors.New("record is still referenced")

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Page is a 1-based pagination request
type Page struct {
	Page  int
	Limit int
}

// NewPage normalizes raw query values, falling back to fallbackLimit
func NewPage(page, limit, fallbackLimit int) Page {
	if fallbackLimit <= 0 {
		fallbackLimit = defaultLimit
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = fallbackLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata returned alongside list results
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Meta builds pagination metadata for total matching rows
func (p Page) Meta(total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// likePattern builds a case-insensitive contains pattern with LIKE wildcards escaped
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(search)) + "%"
}

// StatusCount is a row of a GROUP BY status aggregate
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
