package pagination

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID        int    `json:"id"`
	SourceIP  string `json:"sourceIp"`
	ShodanTag string `json:"shodanTag"`
}

func TestFetchPage_ValidatesAndConvertsToZeroBased(t *testing.T) {
	var gotIndex, gotLimit int
	fetch := func(_ context.Context, pageIndex, limit int) (models.Page[row], error) {
		gotIndex, gotLimit = pageIndex, limit
		return models.Page[row]{Items: []row{{ID: 1}}, Total: 1}, nil
	}

	p, err := FetchPage[row](context.Background(), fetch, 3, 25)
	require.NoError(t, err)
	assert.Equal(t, 2, gotIndex)
	assert.Equal(t, 25, gotLimit)
	assert.Len(t, p.Items, 1)

	for _, bad := range [][2]int{{0, 10}, {-1, 10}, {1, 0}, {1, -5}} {
		_, err := FetchPage[row](context.Background(), fetch, bad[0], bad[1])
		require.ErrorIs(t, err, common.ErrInvalidPage, "page=%d size=%d", bad[0], bad[1])
	}
}

func TestFetchPage_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := FetchPage[row](context.Background(), func(context.Context, int, int) (models.Page[row], error) {
		return models.Page[row]{}, boom
	}, 1, 10)
	require.ErrorIs(t, err, boom)
}

func TestDecode(t *testing.T) {
	header := func(total string) http.Header {
		h := http.Header{}
		h.Set(common.TotalCountHeaderName, total)
		return h
	}
	items := func(n int) []any {
		out := make([]any, n)
		for i := range out {
			out[i] = map[string]any{"id": float64(i + 1)}
		}
		return out
	}

	tests := []struct {
		name      string
		body      any
		header    http.Header
		offset    int
		limit     int
		wantLen   int
		wantTotal int
		wantMore  bool
		wantMsg   string
		wantErr   bool
	}{
		{name: "envelope", body: map[string]any{"data": items(2), "total": float64(57)}, limit: 10, wantLen: 2, wantTotal: 57},
		{name: "envelope wins over header", body: map[string]any{"data": items(1), "total": float64(3)}, header: header("99"), limit: 10, wantLen: 1, wantTotal: 3},
		{name: "envelope without total uses header", body: map[string]any{"data": items(1)}, header: header("7"), limit: 10, wantLen: 1, wantTotal: 7},
		{name: "envelope null data", body: map[string]any{"data": nil, "total": float64(0)}, limit: 10},
		{name: "bare array with header", body: items(10), header: header("1000"), limit: 10, wantLen: 10, wantTotal: 1000},
		{name: "bad header falls back", body: items(3), header: header("lots"), offset: 20, limit: 10, wantLen: 3, wantTotal: 23},
		{name: "bare full page is lower bound", body: items(10), offset: 10, limit: 10, wantLen: 10, wantTotal: 20, wantMore: true},
		{name: "empty body", body: nil, limit: 10},
		{name: "text answer", body: "No active scannings", limit: 10, wantMsg: "No active scannings"},
		{name: "object without data", body: map[string]any{"items": items(1)}, limit: 10, wantErr: true},
		{name: "data not a list", body: map[string]any{"data": "x"}, limit: 10, wantErr: true},
		{name: "number", body: float64(4), limit: 10, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode[row](tt.body, tt.header, tt.offset, tt.limit)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantTotal, p.Total)
			assert.Equal(t, tt.wantMore, p.More)
			assert.Equal(t, tt.wantMsg, p.Message)
		})
	}
}

func TestGet_AgainstServer(t *testing.T) {
	var gotQuery, gotAuth string

	r := chi.NewRouter()
	r.Get("/api/v1/events/user/all", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.RawQuery
		gotAuth = req.Header.Get("Authorization")
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		parts := make([]string, limit)
		for i := range parts {
			parts[i] = fmt.Sprintf(`{"id":%d,"source_ip":"10.0.0.%d","shodan_tag":"t"}`, i+1, i+1)
		}
		w.Header().Set(common.TotalCountHeaderName, "35")
		_, _ = w.Write([]byte("[" + strings.Join(parts, ",") + "]"))
	})
	r.Get("/api/v1/scanning/get-all-active-scanning", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":9,"source_ip":"1.1.1.1"}],"total":1}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL + "/api/v1")
	require.NoError(t, err)
	ctx := context.Background()

	fetch := func(ctx context.Context, pageIndex, limit int) (models.Page[row], error) {
		return Get[row](ctx, c, "tok", "/events/user/all", pageIndex, limit)
	}
	p, err := FetchPage[row](ctx, fetch, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "limit=10&page=0", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)
	require.Len(t, p.Items, 10)
	assert.Equal(t, "10.0.0.1", p.Items[0].SourceIP)
	assert.Equal(t, "t", p.Items[0].ShodanTag)
	assert.Equal(t, 35, p.Total)
	assert.Equal(t, 4, State{CurrentPage: 1, ItemsPerPage: 10, TotalItems: p.Total}.TotalPages())

	active, err := Get[row](ctx, c, "tok", "scanning/get-all-active-scanning", 0, 10)
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, 9, active.Items[0].ID)
	assert.Equal(t, 1, active.Total)
}

func TestGet_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL)
	require.NoError(t, err)

	_, err = Get[row](context.Background(), c, "", "/x", 0, 10)
	require.ErrorIs(t, err, client.ErrUnavailable)
}
