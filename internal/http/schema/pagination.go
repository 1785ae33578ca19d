package schema

import (
	"net/url"
	"strconv"

	"github.com/yungbote/storefront-backend/internal/services"
)

// Paginated is the list envelope used by every page-numbered endpoint.
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func NewPaginated[T any](u *url.URL, page services.Page, count int64, results []T) Paginated[T] {
	if results == nil {
		results = []T{}
	}
	out := Paginated[T]{Count: count, Results: results}
	if page.HasNext(count) {
		s := pageLink(u, page.Number+1)
		out.Next = &s
	}
	if page.HasPrevious() {
		s := pageLink(u, page.Number-1)
		out.Previous = &s
	}
	return out
}

// pageLink keeps every query parameter of u and swaps the page number.
// Page 1 drops the parameter entirely.
func pageLink(u *url.URL, number int) string {
	if u == nil {
		u = &url.URL{}
	}
	q := u.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	link := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return link.String()
}
