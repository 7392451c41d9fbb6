// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

// Email syntax is deliberately not validated beyond presence: the identifier
// is normalized and hashed, so a malformed address only ever fails to match.
type SignupRequest struct {
	Email string `json:"email" validate:"required,max=255"`
	Phone string `json:"phone" validate:"required,max=32"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,max=255"`
}

type VerifyRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Code   string `json:"code"    validate:"required,len=6,numeric"`
}

// CodeIssuedResponse echoes the code only in development deployments; in
// production the notifier is the sole delivery channel and OTPCode stays
// empty.
type CodeIssuedResponse struct {
	UserID    string    `json:"user_id"`
	OTPCode   string    `json:"otp_code,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	EmailHash string    `json:"email_hash"`
	PhoneHash string    `json:"phone_hash"`
	CreatedAt time.Time `json:"created_at"`
}
