package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snakeEvents(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":%d,"ip":"10.0.0.%d","source_time":"2024-05-01T10:00:00Z",`+
			`"country_name":"Latvia","shodan_cves":["CVE-1"],"http_title":"t%d"}`, i+1, i+1, i)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func TestEventService_List(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/events/user/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(common.TotalCountHeaderName, "95")
		reply(http.StatusOK, snakeEvents(10))(w, r)
	})

	page, err := NewEventService(api.client, staticToken("tok")).List(context.Background(), 1, 10)
	require.NoError(t, err)

	req := api.last()
	assert.Equal(t, "limit=10&page=0", req.Query)
	assert.Equal(t, "Bearer tok", req.Auth)

	require.Len(t, page.Items, 10)
	e := page.Items[0]
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "10.0.0.1", e.IP)
	assert.Equal(t, "2024-05-01T10:00:00Z", e.SourceTime)
	require.NotNil(t, e.CountryName)
	assert.Equal(t, "Latvia", *e.CountryName)
	assert.Equal(t, []string{"CVE-1"}, e.ShodanCves)
	require.NotNil(t, e.HTTPTitle)
	assert.Equal(t, "t0", *e.HTTPTitle)

	assert.Equal(t, 95, page.Total)
	st := pagination.State{CurrentPage: 1, ItemsPerPage: 10, TotalItems: page.Total}
	assert.Equal(t, 10, st.TotalPages())
}

func TestEventService_ListThirdPage(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/events/user/all", reply(http.StatusOK, `[]`))

	_, err := NewEventService(api.client, staticToken("")).List(context.Background(), 3, 25)
	require.NoError(t, err)
	assert.Equal(t, "limit=25&page=2", api.last().Query)
	assert.Empty(t, api.last().Auth)
}

func TestEventService_InvalidPage(t *testing.T) {
	api := newFakeAPI(t)
	_, err := NewEventService(api.client, staticToken("")).List(context.Background(), 0, 10)
	require.ErrorIs(t, err, common.ErrInvalidPage)
	assert.Equal(t, 0, api.count())
}

func TestEventService_ServerError(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/events/user/all", reply(http.StatusInternalServerError, "db down"))

	_, err := NewEventService(api.client, staticToken("t")).List(context.Background(), 1, 10)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, "db down", client.Message(err))
}

func TestIPService_AddThenList(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(t)

	ips := []string{"8.8.8.8"}
	api.router.Get("/ips/user/all", func(w http.ResponseWriter, r *http.Request) {
		reply(http.StatusOK, `["`+strings.Join(ips, `","`)+`"]`)(w, r)
	})
	api.router.Patch("/ips/user/add", func(w http.ResponseWriter, _ *http.Request) {
		ips = append(ips, "1.2.3.4")
		w.WriteHeader(http.StatusOK)
	})

	svc := NewIPService(api.client, staticToken("t"))
	require.NoError(t, svc.Add(ctx, " 1.2.3.4 "))

	req := api.last()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.JSONEq(t, `["1.2.3.4"]`, req.Body)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, got, "1.2.3.4")
}

func TestIPService_Delete(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Delete("/ips/user/delete", reply(http.StatusOK, ""))

	require.NoError(t, NewIPService(api.client, staticToken("t")).Delete(context.Background(), "1.2.3.4", "::1"))

	req := api.last()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.JSONEq(t, `["1.2.3.4","::1"]`, req.Body)
}

func TestIPService_Validation(t *testing.T) {
	api := newFakeAPI(t)
	svc := NewIPService(api.client, staticToken("t"))

	require.ErrorIs(t, svc.Add(context.Background()), common.ErrInvalidIP)
	require.ErrorIs(t, svc.Add(context.Background(), "1.2.3"), common.ErrInvalidIP)
	require.ErrorIs(t, svc.Delete(context.Background(), "1.1.1.1", "example.com"), common.ErrInvalidIP)
	assert.Equal(t, 0, api.count())
}

func TestIPService_ListFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/ips/user/all", reply(http.StatusInternalServerError, ""))

	_, err := NewIPService(api.client, staticToken("t")).List(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestScanService_Get(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/scanning/{id}", func(w http.ResponseWriter, r *http.Request) {
		reply(http.StatusOK, `{"id":`+chi.URLParam(r, "id")+`,"in_progress":true,"total_ips_count":8,"processed_ips_count":2}`)(w, r)
	})

	info, err := NewScanService(api.client, staticToken("t")).Get(context.Background(), " 42 ")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/scanning/42", api.last().Path)

	p, ok := info.Progress()
	require.True(t, ok)
	assert.Equal(t, int64(42), p.ID)
	assert.True(t, p.InProgress)
	assert.Equal(t, 25.0, p.Percent())
}

func TestScanService_EmptyID(t *testing.T) {
	api := newFakeAPI(t)
	svc := NewScanService(api.client, staticToken("t"))

	_, err := svc.Get(context.Background(), "  ")
	require.ErrorIs(t, err, common.ErrEmptyScanID)
	_, err = svc.Stop(context.Background(), "")
	require.ErrorIs(t, err, common.ErrEmptyScanID)
	assert.Equal(t, 0, api.count())
}

func TestScanService_Commands(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post("/scanning/start-scanning-ips", func(w http.ResponseWriter, r *http.Request) {
		reply(http.StatusOK, "Scanning started with history="+r.URL.Query().Get("history"))(w, r)
	})
	api.router.Post("/scanning/stop-scanning/{id}", reply(http.StatusOK, "Scanning 7 stopped"))
	api.router.Post("/scanning/stop-all-active-scannings", reply(http.StatusOK, "Stopped 3 scannings"))
	api.router.Get("/scanning/get-last-started-scanning", reply(http.StatusOK, `{"id":1,"completed":false}`))
	api.router.Get("/scanning/get-last-completed-scanning", reply(http.StatusOK, `{"id":2,"is_completed":true,"total_ips_count":1}`))
	api.router.Get("/scanning/get-last-active-scanning", reply(http.StatusOK, ""))

	ctx := context.Background()
	svc := NewScanService(api.client, staticToken("t"))

	info, err := svc.Start(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "Scanning started with history=true", info.Text)
	assert.Equal(t, "history=true", api.last().Query)

	info, err = svc.Start(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "history=false", api.last().Query)

	info, err = svc.Stop(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Scanning 7 stopped", info.Text)
	assert.Equal(t, http.MethodPost, api.last().Method)

	info, err = svc.StopAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Stopped 3 scannings", info.Text)

	info, err = svc.LastStarted(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(1), "completed": false}, info.Data)
	_, ok := info.Progress()
	assert.False(t, ok)

	info, err = svc.LastCompleted(ctx)
	require.NoError(t, err)
	p, ok := info.Progress()
	require.True(t, ok)
	assert.True(t, p.IsCompleted)

	info, err = svc.LastActive(ctx)
	require.NoError(t, err)
	assert.True(t, info.Empty())
}

func TestScanService_ListActive(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/scanning/get-all-active-scanning", reply(http.StatusOK,
		`{"data":[{"id":5,"in_progress":true,"total_ips_count":10,"processed_ips_count":5}],"total":11}`))

	page, err := NewScanService(api.client, staticToken("t")).ListActive(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=1", api.last().Query)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(5), page.Items[0].ID)
	assert.Equal(t, 11, page.Total)
}

func TestScanService_ListActiveText(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/scanning/get-all-active-scanning", reply(http.StatusOK, "No active scannings"))

	page, err := NewScanService(api.client, staticToken("t")).ListActive(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, "No active scannings", page.Message)
}

func TestScanService_ErrorBodyIsMessage(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/scanning/{id}", reply(http.StatusNotFound, "Scanning with id 9 not found"))

	_, err := NewScanService(api.client, staticToken("t")).Get(context.Background(), "9")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "Scanning with id 9 not found", client.Message(err))
}

func TestMonitoringService_Health(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Get("/actuator/health", reply(http.StatusOK, `{"status":"UP","components":{"disk_space":{"status":"UP"}}}`))

	h, err := NewMonitoringService(api.client, staticToken("t")).Health(context.Background())
	require.NoError(t, err)

	m, ok := h.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UP", m["status"])
	assert.Contains(t, m["components"], "diskSpace")

	out := PrettyJSON(h)
	assert.Contains(t, out, "\n  \"status\": \"UP\"")
	assert.Equal(t, "plain", PrettyJSON("plain"))
}

func TestDevService(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(t)
	api.router.Post("/dev/start-scanning-ips", reply(http.StatusOK, "Started scanning 12 ips"))
	api.router.Post("/dev/scan-by-ip", func(w http.ResponseWriter, r *http.Request) {
		reply(http.StatusOK, `{"ip":"`+r.URL.Query().Get("ip")+`","open_ports":[22,80]}`)(w, r)
	})

	svc := NewDevService(api.client, staticToken("t"))

	msg, err := svc.StartScanningIPs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Started scanning 12 ips", msg)

	res, err := svc.ScanByIP(ctx, " 1.2.3.4 ")
	require.NoError(t, err)
	assert.Equal(t, "ip=1.2.3.4", api.last().Query)
	assert.Equal(t, map[string]any{"ip": "1.2.3.4", "openPorts": []any{float64(22), float64(80)}}, res)

	_, err = svc.ScanByIP(ctx, "")
	require.ErrorIs(t, err, common.ErrInvalidIP)
}
