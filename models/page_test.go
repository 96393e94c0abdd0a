package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostsPage_Navigation(t *testing.T) {
	tests := []struct {
		name      string
		page      PostsPage
		wantPages int
		wantPrev  int
		wantNext  int
	}{
		{name: "empty", page: PostsPage{Page: 1, PerPage: 5}, wantPages: 0},
		{name: "single page", page: PostsPage{Page: 1, PerPage: 5, Total: 5}, wantPages: 1},
		{name: "first of three", page: PostsPage{Page: 1, PerPage: 5, Total: 11}, wantPages: 3, wantNext: 2},
		{name: "middle", page: PostsPage{Page: 2, PerPage: 5, Total: 11}, wantPages: 3, wantPrev: 1, wantNext: 3},
		{name: "last", page: PostsPage{Page: 3, PerPage: 5, Total: 11}, wantPages: 3, wantPrev: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPages, tt.page.Pages())
			assert.Equal(t, tt.wantPrev, tt.page.PrevNum())
			assert.Equal(t, tt.wantNext, tt.page.NextNum())
			assert.Equal(t, tt.wantPrev != 0, tt.page.HasPrev())
			assert.Equal(t, tt.wantNext != 0, tt.page.HasNext())
		})
	}
}

func TestPostsPage_IterPages(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int64
		want  []int
	}{
		{name: "few pages are all shown", page: 1, total: 15, want: []int{1, 2, 3}},
		{name: "gap after the current window", page: 1, total: 50, want: []int{1, 2, 0, 10}},
		{name: "gaps on both sides", page: 5, total: 50, want: []int{1, 0, 4, 5, 6, 0, 10}},
		{name: "gap before the end window", page: 10, total: 50, want: []int{1, 0, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PostsPage{Page: tt.page, PerPage: 5, Total: tt.total}
			assert.Equal(t, tt.want, p.IterPages(1, 1, 2, 1))
		})
	}
}

func TestPostsPage_IterPages_PageFarPastTheEnd(t *testing.T) {
	p := PostsPage{Page: math.MaxInt, PerPage: 5, Total: 7}

	assert.Equal(t, []int{1, 2}, p.IterPages(1, 1, 2, 1))
	assert.False(t, p.HasNext())
	assert.Equal(t, math.MaxInt-1, p.PrevNum())
}

func TestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), Offset(1, 5))
	assert.Equal(t, uint64(10), Offset(3, 5))
	assert.Equal(t, uint64(0), Offset(0, 5), "pages below 1 mean the first page")
	assert.Equal(t, uint64(0), Offset(4, 0))
}

func TestOffset_HugePageSaturates(t *testing.T) {
	// (3689348814741910325-1)*5 wraps to 4 in uint64 arithmetic.
	assert.Equal(t, uint64(math.MaxInt64), Offset(3689348814741910325, 5))
	assert.Equal(t, uint64(math.MaxInt64), Offset(math.MaxInt, 5))
	assert.Equal(t, uint64(math.MaxInt64-2), Offset(math.MaxInt64/5+1, 5), "largest exact offset")
}
