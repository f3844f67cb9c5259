package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"3", 3},
		{" 2 ", 2},
		{"0", 1},
		{"-4", 1},
		{"last", 1},
		{"2.5", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePage(tt.raw), "raw %q", tt.raw)
	}
}

func TestComputePage(t *testing.T) {
	t.Run("empty listing has one page", func(t *testing.T) {
		bounds := computePage(1, 0, 10)
		assert.Equal(t, pageBounds{number: 1, totalPages: 1, offset: 0}, bounds)
	})

	t.Run("clamps past the end to the last page", func(t *testing.T) {
		bounds := computePage(99, 25, 10)
		assert.Equal(t, pageBounds{number: 3, totalPages: 3, offset: 20}, bounds)
	})

	t.Run("clamps below one to the first page", func(t *testing.T) {
		bounds := computePage(0, 25, 10)
		assert.Equal(t, 1, bounds.number)
		assert.Equal(t, 0, bounds.offset)
	})

	t.Run("exact multiple", func(t *testing.T) {
		bounds := computePage(2, 20, 10)
		assert.Equal(t, pageBounds{number: 2, totalPages: 2, offset: 10}, bounds)
	})
}

func TestNewPage(t *testing.T) {
	page := newPage[int](nil, computePage(2, 25, 10), 25)

	assert.NotNil(t, page.Items)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
}
