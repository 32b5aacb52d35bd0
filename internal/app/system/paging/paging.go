// internal/app/system/paging/paging.go
package paging

import (
	"strconv"
	"strings"

	"github.com/dalemusser/vethub/internal/domain/models"
)

// Page is a resolved, clamped page request.
// Page is 1-based; Limit is always within [1, models.MaxLimit].
type Page struct {
	Page  int
	Limit int
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// ClampPage parses a 1-based page number. Missing, unparseable, or
// non-positive values become models.DefaultPage.
func ClampPage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return models.DefaultPage
	}
	return n
}

// ClampLimit parses a page size. Missing or unparseable values become
// models.DefaultLimit; parsed values are clamped to [1, models.MaxLimit].
func ClampLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return models.DefaultLimit
	}
	if n < 1 {
		return 1
	}
	if n > models.MaxLimit {
		return models.MaxLimit
	}
	return n
}

// TotalPages returns ceil(total/limit). A non-positive limit yields 0.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// Window returns the [start, end) slice bounds of page p over n items,
// clamped to the slice length. Used when paging an in-memory result set.
func Window(n int, p Page) (start, end int) {
	skip := p.Skip()
	if skip >= int64(n) {
		return n, n
	}
	start = int(skip)
	end = start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
