package service

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *models.CatalogEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) IsHealthy() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func eventOfType(t models.EventType) interface{} {
	return mock.MatchedBy(func(e *models.CatalogEvent) bool {
		return e != nil && e.Type == t
	})
}

type staticTerms []string

func (s staticTerms) BlockedTerms(context.Context) ([]string, error) {
	return s, nil
}

type failingTerms struct{}

func (failingTerms) BlockedTerms(context.Context) ([]string, error) {
	return nil, errors.New("terms unavailable")
}
