// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// User carries only hashed contact identifiers. Plaintext email and phone
// never touch storage.
type User struct {
	ID        string    `db:"id"`
	EmailHash string    `db:"email_hash"`
	PhoneHash string    `db:"phone_hash"`
	CreatedAt time.Time `db:"created_at"`
}

type LoginCode struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	Consumed  bool      `db:"consumed"`
	CreatedAt time.Time `db:"created_at"`
}

func (c *LoginCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

func (c *LoginCode) IsUsable(now time.Time) bool {
	return !c.Consumed && !c.IsExpired(now)
}
