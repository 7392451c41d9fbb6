// AngelaMos | 2026
// service.go

package events

import (
	"context"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(
	ctx context.Context,
	userID, eventType string,
) error {
	return s.repo.Create(ctx, &Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		EventType: eventType,
	})
}

func (s *Service) ListRecent(
	ctx context.Context,
	limit int,
) ([]Event, error) {
	return s.repo.ListRecent(ctx, clampLimit(limit))
}

func (s *Service) ListForUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]Event, error) {
	return s.repo.ListForUser(ctx, userID, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
