// Package paging splits ordered result sets into numbered pages. Out-of-range
// requests are clamped rather than rejected: a page that is not a number
// selects the first page, a number outside the range selects the last one.
package paging

import (
	"strconv"
	"strings"
)

type Page struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// New resolves the raw page parameter against total items. There is always
// at least one page, even when total is zero.
func New(total, size int, rawPage string) Page {
	if size <= 0 {
		size = 1
	}
	if total < 0 {
		total = 0
	}

	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}

	number := 1
	raw := strings.TrimSpace(rawPage)
	if raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			number = 1
		case n < 1 || n > pages:
			number = pages
		default:
			number = n
		}
	}

	return Page{Number: number, Size: size, TotalItems: total, TotalPages: pages}
}

// Bounds returns the half-open item range [start, end) of the page.
func (p Page) Bounds() (start, end int) {
	start = (p.Number - 1) * p.Size
	if start > p.TotalItems {
		start = p.TotalItems
	}
	end = start + p.Size
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

func (p Page) Offset() int {
	start, _ := p.Bounds()
	return start
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.TotalPages }
func (p Page) Previous() int     { return max(p.Number-1, 1) }
func (p Page) Next() int         { return min(p.Number+1, p.TotalPages) }

// Numbers lists every page number, for the pager links.
func (p Page) Numbers() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Slice returns the part of items that falls on page p.
func Slice[T any](items []T, p Page) []T {
	start, end := p.Bounds()
	if start >= len(items) {
		return []T{}
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
