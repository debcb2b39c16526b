// Package paginator splits a counted result set into numbered pages.
package paginator

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the page size of every post listing.
const DefaultPerPage = 10

// Page describes one page of a result set. Number is 1-based.
type Page struct {
	Number     int
	PerPage    int
	Total      int64
	TotalPages int
}

// New resolves the raw ?page value against total items.
//
// A missing or non-numeric value gives the first page. A number below 1
// or past the end gives the last page. An empty set still has one page.
func New(raw string, total int64, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	pages := 1
	if total > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > pages:
		number = pages
	}

	return Page{Number: number, PerPage: perPage, Total: total, TotalPages: pages}
}

// Limit and Offset feed LIMIT/OFFSET queries.
func (p Page) Limit() int32  { return int32(p.PerPage) }
func (p Page) Offset() int32 { return int32((p.Number - 1) * p.PerPage) }

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.TotalPages }
func (p Page) HasOther() bool    { return p.HasPrevious() || p.HasNext() }

func (p Page) Previous() int { return max(p.Number-1, 1) }
func (p Page) Next() int     { return min(p.Number+1, p.TotalPages) }

// Range lists all page numbers, for rendering page links.
func (p Page) Range() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
