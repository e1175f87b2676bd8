package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/common"
)

// Fetcher loads the page with the given 0-based index.
type Fetcher[T any] func(ctx context.Context, pageIndex, limit int) (models.Page[T], error)

// FetchPage loads 1-based page of pageSize items.
func FetchPage[T any](ctx context.Context, fetch Fetcher[T], page, pageSize int) (models.Page[T], error) {
	if page < 1 || pageSize <= 0 {
		return models.Page[T]{}, fmt.Errorf("%w: page=%d size=%d", common.ErrInvalidPage, page, pageSize)
	}
	return fetch(ctx, page-1, pageSize)
}

// Query builds the page/limit query the API expects.
func Query(pageIndex, limit int) url.Values {
	return url.Values{
		"page":  {strconv.Itoa(pageIndex)},
		"limit": {strconv.Itoa(limit)},
	}
}

// Get fetches one page from a list endpoint.
func Get[T any](ctx context.Context, c client.Client, token, path string, pageIndex, limit int) (models.Page[T], error) {
	var body any
	resp, err := c.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  Query(pageIndex, limit),
		Token:  token,
	}, &body)
	if err != nil {
		return models.Page[T]{}, err
	}
	page, err := Decode[T](body, resp.Header, pageIndex*limit, limit)
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("GET %s: %w", path, err)
	}
	return page, nil
}

// Decode turns an already camelized list body into a page. offset is the
// index of the first item on the page.
func Decode[T any](body any, header http.Header, offset, limit int) (models.Page[T], error) {
	var (
		page  models.Page[T]
		raw   []any
		total = -1
	)

	switch v := body.(type) {
	case nil:
	case string:
		page.Message = v
		return page, nil
	case []any:
		raw = v
	case map[string]any:
		data, ok := v["data"]
		if !ok {
			return page, fmt.Errorf("unexpected list response: no data field")
		}
		switch d := data.(type) {
		case []any:
			raw = d
		case nil:
		default:
			return page, fmt.Errorf("unexpected list response: data is %T", data)
		}
		if n, ok := v["total"].(float64); ok && n >= 0 {
			total = int(n)
		}
	default:
		return page, fmt.Errorf("unexpected list response: %T", body)
	}

	if len(raw) > 0 {
		b, err := json.Marshal(raw)
		if err != nil {
			return page, err
		}
		if err := json.Unmarshal(b, &page.Items); err != nil {
			return page, fmt.Errorf("decode items: %w", err)
		}
	}

	if total < 0 {
		total = headerTotal(header)
	}
	if total < 0 {
		total = offset + len(page.Items)
		page.More = limit > 0 && len(page.Items) == limit
	}
	page.Total = total
	return page, nil
}

func headerTotal(h http.Header) int {
	if h == nil {
		return -1
	}
	v := h.Get(common.TotalCountHeaderName)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
