package services

import (
	"context"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/pagination"
)

const eventsPath = "/events/user/all"

type EventService interface {
	// List returns 1-based page of limit events.
	List(ctx context.Context, page, limit int) (models.Page[models.Event], error)
}

type eventService struct {
	client client.Client
	tokens TokenSource
}

func NewEventService(c client.Client, tokens TokenSource) EventService {
	return &eventService{client: c, tokens: tokens}
}

func (s *eventService) List(ctx context.Context, page, limit int) (models.Page[models.Event], error) {
	return pagination.FetchPage(ctx, s.fetch, page, limit)
}

func (s *eventService) fetch(ctx context.Context, pageIndex, limit int) (models.Page[models.Event], error) {
	return pagination.Get[models.Event](ctx, s.client, s.tokens.AccessToken(), eventsPath, pageIndex, limit)
}
