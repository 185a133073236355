package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// PageRequest is a normalized page window. Page is 1-based.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize clamps the request into range. A zero page size means "use the default".
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize == 0 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize < 1 {
		r.PageSize = 1
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Offset calculates the number of records to skip based on page and page size.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery reads page and pageSize. Missing, zero or non-numeric
// values fall back to page 1 and the default size; everything else is
// clamped, never rejected.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	req := PageRequest{
		Page:     ParseInt(values.Get("page")),
		PageSize: ParseInt(values.Get("pageSize")),
	}
	req.Normalize(cfg)
	return req
}

// ParseInt truncates a numeric string toward zero. Anything unparsable is 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// PageResult holds one page of items with the partition totals.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// NewPageResult computes TotalPages as ceil(total/pageSize) with a minimum of 1.
func NewPageResult[T any](items []T, total int, req PageRequest) PageResult[T] {
	totalPages := 1
	if req.PageSize > 0 {
		totalPages = total / req.PageSize
		if total%req.PageSize != 0 {
			totalPages++
		}
	}
	if totalPages < 1 {
		totalPages = 1
	}

	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items:      items,
		TotalPages: totalPages,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
}
