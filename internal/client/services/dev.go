package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/common"
)

const (
	devStartScanningPath = "/dev/start-scanning-ips"
	devScanByIPPath      = "/dev/scan-by-ip"
)

// DevService exposes the developer endpoints.
type DevService interface {
	StartScanningIPs(ctx context.Context) (string, error)
	ScanByIP(ctx context.Context, ip string) (any, error)
}

type devService struct {
	client client.Client
	tokens TokenSource
}

func NewDevService(c client.Client, tokens TokenSource) DevService {
	return &devService{client: c, tokens: tokens}
}

func (s *devService) StartScanningIPs(ctx context.Context) (string, error) {
	var msg string
	if err := s.client.Post(ctx, s.tokens.AccessToken(), devStartScanningPath, nil, nil, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

// ScanByIP sends ip as given, after trimming; the server decides whether it
// is acceptable.
func (s *devService) ScanByIP(ctx context.Context, ip string) (any, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return nil, common.ErrInvalidIP
	}
	var result any
	if err := s.client.Post(ctx, s.tokens.AccessToken(), devScanByIPPath, url.Values{"ip": {ip}}, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
