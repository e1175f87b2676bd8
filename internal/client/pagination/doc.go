// Package pagination implements the paged list pattern shared by the events,
// active scans and similar views.
//
// FetchPage validates a 1-based page request and hands the 0-based page index
// to a Fetcher. Get is the usual Fetcher body: it issues GET path?page&limit
// and derives the total strictly from the response, preferring a
// {"data": [...], "total": n} envelope, then the X-Total-Count header, then
// the lower bound offset+len(items).
//
// Pager holds the view state of one paged list. Every load is tagged with a
// sequence number from Begin; Complete applies a result only when it belongs
// to the latest load, so a slow response can never overwrite a newer one.
// Errors clear the list.
package pagination
