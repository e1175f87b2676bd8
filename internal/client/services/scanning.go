package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
	"github.com/dmitrijs2005/scanboard/internal/common"
)

const (
	scanningPath          = "/scanning/"
	scanStartPath         = "/scanning/start-scanning-ips"
	scanStopPath          = "/scanning/stop-scanning/"
	scanStopAllPath       = "/scanning/stop-all-active-scannings"
	scanLastStartedPath   = "/scanning/get-last-started-scanning"
	scanLastCompletedPath = "/scanning/get-last-completed-scanning"
	scanLastActivePath    = "/scanning/get-last-active-scanning"
	scanActivePath        = "/scanning/get-all-active-scanning"
)

// ScanService drives scanning jobs. Commands return whatever the server
// answered, JSON or text, as a ScanInfo.
type ScanService interface {
	Get(ctx context.Context, id string) (models.ScanInfo, error)
	Start(ctx context.Context, history bool) (models.ScanInfo, error)
	Stop(ctx context.Context, id string) (models.ScanInfo, error)
	StopAll(ctx context.Context) (models.ScanInfo, error)
	LastStarted(ctx context.Context) (models.ScanInfo, error)
	LastCompleted(ctx context.Context) (models.ScanInfo, error)
	LastActive(ctx context.Context) (models.ScanInfo, error)
	// ListActive returns 1-based page of limit active scans.
	ListActive(ctx context.Context, page, limit int) (models.Page[models.ScanProgress], error)
}

type scanService struct {
	client client.Client
	tokens TokenSource
}

func NewScanService(c client.Client, tokens TokenSource) ScanService {
	return &scanService{client: c, tokens: tokens}
}

func (s *scanService) Get(ctx context.Context, id string) (models.ScanInfo, error) {
	id, err := scanID(id)
	if err != nil {
		return models.ScanInfo{}, err
	}
	return s.call(ctx, http.MethodGet, scanningPath+id, nil)
}

func (s *scanService) Start(ctx context.Context, history bool) (models.ScanInfo, error) {
	q := url.Values{"history": {strconv.FormatBool(history)}}
	return s.call(ctx, http.MethodPost, scanStartPath, q)
}

func (s *scanService) Stop(ctx context.Context, id string) (models.ScanInfo, error) {
	id, err := scanID(id)
	if err != nil {
		return models.ScanInfo{}, err
	}
	return s.call(ctx, http.MethodPost, scanStopPath+id, nil)
}

func (s *scanService) StopAll(ctx context.Context) (models.ScanInfo, error) {
	return s.call(ctx, http.MethodPost, scanStopAllPath, nil)
}

func (s *scanService) LastStarted(ctx context.Context) (models.ScanInfo, error) {
	return s.call(ctx, http.MethodGet, scanLastStartedPath, nil)
}

func (s *scanService) LastCompleted(ctx context.Context) (models.ScanInfo, error) {
	return s.call(ctx, http.MethodGet, scanLastCompletedPath, nil)
}

func (s *scanService) LastActive(ctx context.Context) (models.ScanInfo, error) {
	return s.call(ctx, http.MethodGet, scanLastActivePath, nil)
}

func (s *scanService) ListActive(ctx context.Context, page, limit int) (models.Page[models.ScanProgress], error) {
	return pagination.FetchPage(ctx, func(ctx context.Context, pageIndex, limit int) (models.Page[models.ScanProgress], error) {
		return pagination.Get[models.ScanProgress](ctx, s.client, s.tokens.AccessToken(), scanActivePath, pageIndex, limit)
	}, page, limit)
}

func (s *scanService) call(ctx context.Context, method, path string, q url.Values) (models.ScanInfo, error) {
	var body any
	_, err := s.client.Do(ctx, client.Request{
		Method: method,
		Path:   path,
		Query:  q,
		Token:  s.tokens.AccessToken(),
	}, &body)
	if err != nil {
		return models.ScanInfo{}, err
	}
	return scanInfo(body), nil
}

func scanInfo(body any) models.ScanInfo {
	switch v := body.(type) {
	case nil:
		return models.ScanInfo{}
	case map[string]any:
		return models.ScanInfo{Data: v}
	case string:
		return models.ScanInfo{Text: v}
	default:
		return models.ScanInfo{Text: prettyJSON(v)}
	}
}

func scanID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", common.ErrEmptyScanID
	}
	return url.PathEscape(id), nil
}
