// Package paging normalizes page requests and carries paged results across layers.
package paging

import (
	"math"
	"strings"
)

const (
	// DefaultPageSize is applied when the requested size is out of range.
	DefaultPageSize = 10
	// MaxPageSize caps the number of rows a single page may return.
	MaxPageSize = 50
)

// Page is a normalized page request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page number to at least 1 and resets out-of-range sizes to the default.
func Normalize(number, size int) Page {
	if number <= 0 {
		number = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip, saturating at math.MaxInt.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Limit returns the number of rows to take.
func (p Page) Limit() int {
	return p.Size
}

// Window returns the [start, end) slice bounds of the page within total rows.
func (p Page) Window(total int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	start := min(max(p.Offset(), 0), total)
	end := start + min(max(p.Size, 0), total-start)
	return start, end
}

// Direction orders a listing.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection treats only "desc" (any case) as descending.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Desc reports whether the direction is descending.
func (d Direction) Desc() bool {
	return d == Descending
}

// Result is one page of items plus the total matching count.
type Result[T any] struct {
	Items      []T
	TotalCount int64
	PageNumber int
	PageSize   int
}

// NewResult builds a result echoing the normalized page.
func NewResult[T any](items []T, total int64, page Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, TotalCount: total, PageNumber: page.Number, PageSize: page.Size}
}

// TotalPages reports how many pages the total count spans.
func (r Result[T]) TotalPages() int {
	if r.PageSize <= 0 || r.TotalCount == 0 {
		return 0
	}
	return int((r.TotalCount + int64(r.PageSize) - 1) / int64(r.PageSize))
}

// Map converts the items of a result while keeping its paging metadata.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	items := make([]U, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, fn(item))
	}
	return Result[U]{Items: items, TotalCount: r.TotalCount, PageNumber: r.PageNumber, PageSize: r.PageSize}
}
