package services

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/common"
)

const (
	ipsListPath   = "/ips/user/all"
	ipsAddPath    = "/ips/user/add"
	ipsDeletePath = "/ips/user/delete"
)

// IPService manages the monitored IP addresses of the current user.
type IPService interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, ips ...string) error
	Delete(ctx context.Context, ips ...string) error
}

type ipService struct {
	client client.Client
	tokens TokenSource
}

func NewIPService(c client.Client, tokens TokenSource) IPService {
	return &ipService{client: c, tokens: tokens}
}

func (s *ipService) List(ctx context.Context) ([]string, error) {
	var ips []string
	if err := s.client.Get(ctx, s.tokens.AccessToken(), ipsListPath, nil, &ips); err != nil {
		return nil, err
	}
	return ips, nil
}

func (s *ipService) Add(ctx context.Context, ips ...string) error {
	body, err := normalizeIPs(ips)
	if err != nil {
		return err
	}
	return s.client.Patch(ctx, s.tokens.AccessToken(), ipsAddPath, nil, body, nil)
}

func (s *ipService) Delete(ctx context.Context, ips ...string) error {
	body, err := normalizeIPs(ips)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, s.tokens.AccessToken(), ipsDeletePath, nil, body, nil)
}

// normalizeIPs trims and validates every address. An empty list is an error.
func normalizeIPs(ips []string) ([]string, error) {
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: no address given", common.ErrInvalidIP)
	}
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) == nil {
			return nil, fmt.Errorf("%w: %q", common.ErrInvalidIP, ip)
		}
		out = append(out, ip)
	}
	return out, nil
}
