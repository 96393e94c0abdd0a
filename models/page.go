package models

import "math"

// PostsPage is one offset-based page of a post listing together with the
// numbers a pagination widget needs.
type PostsPage struct {
	Items   []Post
	Page    int
	PerPage int
	Total   int64
}

// Pages returns the total number of pages. An empty listing has zero pages.
func (p PostsPage) Pages() int {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p PostsPage) HasPrev() bool {
	return p.Page > 1
}

func (p PostsPage) HasNext() bool {
	return p.Page < p.Pages()
}

func (p PostsPage) PrevNum() int {
	if !p.HasPrev() {
		return 0
	}
	return p.Page - 1
}

func (p PostsPage) NextNum() int {
	if !p.HasNext() {
		return 0
	}
	return p.Page + 1
}

// IterPages lists the page numbers to render in a pagination widget.
// Pages near both edges and around the current page are kept; every
// skipped run is collapsed into a single 0 entry marking a gap.
func (p PostsPage) IterPages(leftEdge, leftCurrent, rightCurrent, rightEdge int) []int {
	pages := p.Pages()
	result := make([]int, 0, pages)

	last := 0
	for num := 1; num <= pages; num++ {
		if num <= leftEdge ||
			(num > p.Page-leftCurrent-1 && num-p.Page < rightCurrent) ||
			num > pages-rightEdge {
			if last+1 != num {
				result = append(result, 0)
			}
			result = append(result, num)
			last = num
		}
	}

	return result
}

// Offset converts a 1-based page number into a row offset.
// Page numbers below 1 are treated as the first page. An offset that does not
// fit in an int64 saturates at math.MaxInt64, which is past every listing.
func Offset(page, perPage int) uint64 {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		return 0
	}
	if uint64(page-1) > math.MaxInt64/uint64(perPage) {
		return math.MaxInt64
	}
	return uint64(page-1) * uint64(perPage)
}
