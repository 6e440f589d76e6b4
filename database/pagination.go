package database

import (
	"github.com/inkwell-cms/backend/errs"
	"github.com/inkwell-cms/backend/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageParams is a page-number window over a result set.
type PageParams struct {
	Page     int
	PageSize int
}

// NewPageParams normalizes raw client input: non-positive values fall back
// to the defaults and the size is capped at MaxPageSize.
func NewPageParams(page, pageSize int) PageParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageParams{Page: page, PageSize: pageSize}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Check validates the window against the total row count. An empty first
// page is allowed; any page past the last one is a bounds error, never a
// silent empty result.
func (p PageParams) Check(total int64) error {
	if p.Page > 1 && int64(p.Offset()) >= total {
		return errs.NewPageOutOfRangeError(p.Page)
	}
	return nil
}

// HasNext reports whether a page follows this one.
func (p PageParams) HasNext(total int64) bool {
	return int64(p.Offset()+p.PageSize) < total
}

// HasPrevious reports whether a page precedes this one.
func (p PageParams) HasPrevious() bool {
	return p.Page > 1
}

// PostPage is one window of a post listing plus the unwindowed total.
type PostPage struct {
	TotalCount int64
	Posts      []models.Post
}
