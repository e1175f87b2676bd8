package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanboard/internal/casing"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/dmitrijs2005/scanboard/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient returns a client rooted at baseURL, e.g.
// "http://localhost:8080/api/v1". Paths passed to the verbs are relative to it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the configured API root.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Get(ctx context.Context, token, path string, query url.Values, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Token: token}, out)
	return err
}

func (c *HTTPClient) Post(ctx context.Context, token, path string, query url.Values, body, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Query: query, Body: body, Token: token}, out)
	return err
}

func (c *HTTPClient) Patch(ctx context.Context, token, path string, query url.Values, body, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Query: query, Body: body, Token: token}, out)
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, token, path string, query url.Values, body, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Query: query, Body: body, Token: token}, out)
	return err
}

// Do issues the request and decodes a 2xx body into out (which may be nil).
// Object keys of JSON bodies are camelized before decoding. Non-2xx answers
// yield *HTTPError; transport failures wrap ErrUnavailable.
func (c *HTTPClient) Do(ctx context.Context, r Request, out any) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	reqID := req.Header.Get(common.RequestIDHeaderName)
	log := c.log.With("method", r.Method, "path", r.Path, "request_id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("%s %s: %w: %w", r.Method, r.Path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w: %w", r.Method, r.Path, ErrUnavailable, err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "bytes", len(raw), "duration", time.Since(start))

	res := &Response{StatusCode: resp.StatusCode, Header: resp.Header}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, newHTTPError(r.Method, r.Path, resp.StatusCode, raw)
	}

	if out != nil {
		if err := decodeBody(raw, out); err != nil {
			return res, fmt.Errorf("%s %s: decode response: %w", r.Method, r.Path, err)
		}
	}
	return res, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if r.Token != "" {
		tok := &oauth2.Token{AccessToken: r.Token, TokenType: "Bearer"}
		tok.SetAuthHeader(req)
	}
	return req, nil
}

// decodeBody fills out from raw. Bodies that are not JSON (the API answers
// some commands with plain text) are accepted for *string and *any targets.
func decodeBody(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		switch o := out.(type) {
		case *string:
			*o = string(trimmed)
			return nil
		case *any:
			*o = string(trimmed)
			return nil
		}
		return err
	}
	v = casing.Camelize(v)

	switch o := out.(type) {
	case *any:
		*o = v
		return nil
	case *string:
		if s, ok := v.(string); ok {
			*o = s
		} else {
			*o = string(trimmed)
		}
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
