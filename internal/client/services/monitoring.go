package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
)

const healthPath = "/actuator/health"

// MonitoringService reads backend health.
type MonitoringService interface {
	Health(ctx context.Context) (any, error)
}

type monitoringService struct {
	client client.Client
	tokens TokenSource
}

func NewMonitoringService(c client.Client, tokens TokenSource) MonitoringService {
	return &monitoringService{client: c, tokens: tokens}
}

func (s *monitoringService) Health(ctx context.Context) (any, error) {
	var health any
	if err := s.client.Get(ctx, s.tokens.AccessToken(), healthPath, nil, &health); err != nil {
		return nil, err
	}
	return health, nil
}

// prettyJSON renders v indented by two spaces, falling back to %v.
func prettyJSON(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// PrettyJSON is the display form used for health and scan results.
func PrettyJSON(v any) string {
	return prettyJSON(v)
}
