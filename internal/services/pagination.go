package services

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPageNumber keeps Offset and HasNext inside int32 at any page size.
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// Page is a 1-based page window.
type Page struct {
	Number int
	Size   int
}

func NewPage(number, size, defaultSize int) Page {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	number = min(max(number, 1), MaxPageNumber)
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) HasNext(total int64) bool {
	return int64(p.Number*p.Size) < total
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
