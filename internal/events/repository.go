// AngelaMos | 2026
// repository.go

package events

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/scentpath/internal/core"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]Event, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO usage_events (id, user_id, event_type)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &event.CreatedAt, query,
		event.ID,
		event.UserID,
		event.EventType,
	)
	if err != nil {
		return fmt.Errorf("create usage event: %w", err)
	}

	return nil
}

func (r *repository) ListRecent(
	ctx context.Context,
	limit int,
) ([]Event, error) {
	query := `
		SELECT id, user_id, event_type, created_at
		FROM usage_events
		ORDER BY created_at DESC
		LIMIT $1`

	var list []Event
	if err := r.db.SelectContext(ctx, &list, query, limit); err != nil {
		return nil, fmt.Errorf("list usage events: %w", err)
	}

	return list, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]Event, error) {
	query := `
		SELECT id, user_id, event_type, created_at
		FROM usage_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var list []Event
	if err := r.db.SelectContext(ctx, &list, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list user events: %w", err)
	}

	return list, nil
}
