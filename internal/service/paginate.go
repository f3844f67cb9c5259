package service

import (
	"strconv"
	"strings"

	"github.com/BloggingApp/feed-service/internal/model"
)

const DefaultPageSize = 10

// ParsePage reads a page query value. Anything that is not a positive
// integer means the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type pageBounds struct {
	number     int
	totalPages int
	offset     int
}

// computePage clamps the requested page into [1, totalPages]. An empty
// listing still has one (empty) page.
func computePage(requested int, total int, size int) pageBounds {
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return pageBounds{
		number:     number,
		totalPages: totalPages,
		offset:     (number - 1) * size,
	}
}

func newPage[T any](items []T, bounds pageBounds, total int) *model.Page[T] {
	if items == nil {
		items = []T{}
	}
	return &model.Page[T]{
		Items:       items,
		CurrentPage: bounds.number,
		TotalPages:  bounds.totalPages,
		TotalCount:  total,
		HasNext:     bounds.number < bounds.totalPages,
		HasPrevious: bounds.number > 1,
	}
}
