package model

// Page is the paginated list envelope returned by every relational
// collection: {count, next, previous, results}.  Next and Previous are
// absolute URLs, or null at the ends.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
