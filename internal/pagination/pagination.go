package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int64.
	MaxPage = math.MaxInt32
)

// Page is a parsed page request.
type Page struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned next to list data.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// Parse reads page/limit query values. Missing, non-numeric and
// non-positive values fall back to defaults; limit is capped at MaxLimit
// and page at MaxPage.
func Parse(page, limit string) Page {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.ParseInt(page, 10, 64); err == nil && n > 0 {
		p.Page = int(min(n, MaxPage))
	} else if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(page, "-") {
		p.Page = MaxPage
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip is the number of documents to skip for this page.
func (p Page) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	return int64(min(p.Page, MaxPage)-1) * int64(min(p.Limit, MaxLimit))
}

// Meta builds the response block for total matching documents.
func (p Page) Meta(total int64) Meta {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

// Slice applies the page window to an already filtered and sorted slice.
func Slice[T any](items []T, p Page) []T {
	start := p.Skip()
	if start < 0 || start >= int64(len(items)) {
		return []T{}
	}
	end := start + int64(min(p.Limit, MaxLimit))
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}
