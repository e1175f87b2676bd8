package models

// Page is one page of a list endpoint. Total is the server-reported number
// of items across all pages; when the server reports none it is the lower
// bound offset+len(Items) and More tells whether the page came back full.
// Message holds the server's text when it answered with prose instead of a
// list.
type Page[T any] struct {
	Items   []T
	Total   int
	More    bool
	Message string
}
