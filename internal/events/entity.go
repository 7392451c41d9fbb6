// AngelaMos | 2026
// entity.go

package events

import (
	"time"
)

// Event is an append-only usage record. Rows are never updated or deleted
// except by cascade when the owning user is removed.
type Event struct {
	ID        string    `db:"id"        json:"id"`
	UserID    string    `db:"user_id"   json:"user_id"`
	EventType string    `db:"event_type" json:"event_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
