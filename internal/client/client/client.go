package client

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes one API call. Token is attached as a bearer credential
// when non-empty; an empty Token sends no Authorization header at all.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Token  string
}

// Response carries the parts of a successful response callers may need
// besides the decoded body.
type Response struct {
	StatusCode int
	Header     http.Header
}

// Client is the transport contract used by the services.
type Client interface {
	Do(ctx context.Context, req Request, out any) (*Response, error)
	Get(ctx context.Context, token, path string, query url.Values, out any) error
	Post(ctx context.Context, token, path string, query url.Values, body, out any) error
	Patch(ctx context.Context, token, path string, query url.Values, body, out any) error
	Delete(ctx context.Context, token, path string, query url.Values, body, out any) error
}
