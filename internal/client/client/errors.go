package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// maxErrorBody bounds the response body kept in HTTPError.
const maxErrorBody = 512

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func newHTTPError(method, path string, status int, body []byte) *HTTPError {
	b := strings.TrimSpace(string(body))
	if len(b) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(b[cut]) {
			cut--
		}
		b = b[:cut] + "..."
	}
	return &HTTPError{Method: method, Path: path, StatusCode: status, Body: b}
}

func (e *HTTPError) Error() string {
	s := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		s += ": " + e.Body
	}
	return s
}

// Unwrap maps the status code onto the package sentinels so callers can use
// errors.Is(err, ErrUnauthorized) and friends.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return nil
	}
}

// Message returns the text to show a user for err: the server's response
// body when there is one, otherwise the error itself.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var he *HTTPError
	if errors.As(err, &he) {
		if he.Body != "" {
			return he.Body
		}
		return fmt.Sprintf("%d %s", he.StatusCode, http.StatusText(he.StatusCode))
	}
	return err.Error()
}
