package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// recorded is one request seen by the fake API.
type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// fakeAPI is an in-process stand-in for the remote API. Handlers are set per
// test; every request is recorded.
type fakeAPI struct {
	t      *testing.T
	mu     sync.Mutex
	seen   []recorded
	router chi.Router
	client *client.HTTPClient
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, router: chi.NewRouter()}

	root := chi.NewRouter()
	root.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			f.seen = append(f.seen, recorded{
				Method: r.Method,
				Path:   r.URL.Path,
				Query:  r.URL.RawQuery,
				Auth:   r.Header.Get("Authorization"),
				Body:   string(b),
			})
			f.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	root.Mount("/api/v1", f.router)

	srv := httptest.NewServer(root)
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL + "/api/v1")
	require.NoError(t, err)
	f.client = c
	return f
}

func (f *fakeAPI) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.seen, "no request reached the fake API")
	return f.seen[len(f.seen)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if len(body) > 0 && (body[0] == '{' || body[0] == '[') {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// staticToken is a TokenSource with a fixed token.
type staticToken string

func (s staticToken) AccessToken() string { return string(s) }
