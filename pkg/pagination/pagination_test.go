package pagination_test

import (
	"net/url"
	"testing"

	"github.com/testersconnect/site/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 6, MaxPageSize: 50}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
		offset   int
	}{
		{"empty", "", 1, 6, 0},
		{"explicit", "page=3&pageSize=10", 3, 10, 20},
		{"non numeric", "page=abc&pageSize=xyz", 1, 6, 0},
		{"negative page", "page=-4", 1, 6, 0},
		{"fractional truncates", "page=2.9&pageSize=4.5", 2, 4, 4},
		{"oversized", "pageSize=500", 1, 50, 0},
		{"negative size", "pageSize=-3", 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			req := pagination.PageRequestFromQuery(values, cfg)
			if req.Page != tt.page || req.PageSize != tt.pageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.page, tt.pageSize)
			}
			if req.Offset() != tt.offset {
				t.Errorf("Offset() = %d, want %d", req.Offset(), tt.offset)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		size       int
		totalPages int
	}{
		{"empty partition", 0, 6, 1},
		{"exact", 12, 6, 2},
		{"remainder", 13, 6, 3},
		{"single", 1, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := pagination.NewPageResult[string](nil, tt.total, pagination.PageRequest{Page: 1, PageSize: tt.size})
			if res.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", res.TotalPages, tt.totalPages)
			}
			if res.Items == nil {
				t.Error("Items is nil")
			}
			if res.TotalCount != tt.total {
				t.Errorf("TotalCount = %d", res.TotalCount)
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var c pagination.Config
		if err := c.Finalize(nil); err != nil {
			t.Fatal(err)
		}
		if c.DefaultPageSize != 6 || c.MaxPageSize != 50 {
			t.Errorf("got %+v", c)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("TEST_PAGE_DEFAULT", "12")
		c := pagination.Config{}
		if err := c.Finalize(&pagination.Env{DefaultPageSize: "TEST_PAGE_DEFAULT"}); err != nil {
			t.Fatal(err)
		}
		if c.DefaultPageSize != 12 {
			t.Errorf("DefaultPageSize = %d", c.DefaultPageSize)
		}
	})

	t.Run("default above max", func(t *testing.T) {
		c := pagination.Config{DefaultPageSize: 60, MaxPageSize: 50}
		if err := c.Finalize(nil); err == nil {
			t.Error("expected error")
		}
	})
}

func TestConfig_Merge(t *testing.T) {
	c := pagination.Config{DefaultPageSize: 6, MaxPageSize: 50}
	c.Merge(&pagination.Config{MaxPageSize: 20})
	if c.DefaultPageSize != 6 || c.MaxPageSize != 20 {
		t.Errorf("got %+v", c)
	}
}
