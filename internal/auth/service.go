// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/scentpath/internal/config"
	"github.com/carterperez-dev/scentpath/internal/core"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidCode     = errors.New("invalid or expired code")
	ErrCodeExpired     = errors.New("code expired")
)

const (
	EventSignup     = "signup"
	EventCodeIssued = "login_code_issued"
	EventLogin      = "login"
)

// SessionStore issues and revokes server-held session tokens.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// EventRecorder appends to the usage event log.
type EventRecorder interface {
	Record(ctx context.Context, userID, eventType string) error
}

type Service struct {
	repo      Repository
	sessions  SessionStore
	notifier  Notifier
	events    EventRecorder
	codeTTL   time.Duration
	echoCodes bool
}

func NewService(
	repo Repository,
	sessions SessionStore,
	notifier Notifier,
	events EventRecorder,
	cfg config.OTPConfig,
) *Service {
	return &Service{
		repo:      repo,
		sessions:  sessions,
		notifier:  notifier,
		events:    events,
		codeTTL:   cfg.CodeTTL,
		echoCodes: cfg.EchoCodes,
	}
}

type CodeIssueResult struct {
	UserID    string
	Code      string
	ExpiresAt time.Time
}

// Signup creates an account keyed by hashed identifiers and issues the first
// login code. The email_hash unique constraint is the real duplicate guard;
// the preliminary lookup only produces a friendlier fast path.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*CodeIssueResult, error) {
	emailHash := core.HashIdentifier(core.NormalizeEmail(req.Email))
	phoneHash := core.HashIdentifier(core.NormalizePhone(req.Phone))

	if _, err := s.repo.FindUserByEmailHash(ctx, emailHash); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	user := &User{
		ID:        uuid.New().String(),
		EmailHash: emailHash,
		PhoneHash: phoneHash,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	result, err := s.issueCode(ctx, user.ID, core.NormalizePhone(req.Phone))
	if err != nil {
		return nil, err
	}

	s.record(ctx, user.ID, EventSignup)

	return result, nil
}

// Login issues a fresh code for an existing account. Outstanding codes are
// left untouched; several may be valid at once.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*CodeIssueResult, error) {
	normalized := core.NormalizeEmail(req.Email)

	user, err := s.repo.FindUserByEmailHash(ctx, core.HashIdentifier(normalized))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	result, err := s.issueCode(ctx, user.ID, normalized)
	if err != nil {
		return nil, err
	}

	s.record(ctx, user.ID, EventCodeIssued)

	return result, nil
}

type VerifyResult struct {
	UserID       string
	SessionToken string
}

// Verify redeems a login code and opens a session. The lookup does not
// distinguish an unknown code from a wrong one, and an expired code is left
// unconsumed (the expiry error rolls the transaction back). Lookup and
// consume run in one transaction, and the consume step is a conditional
// write, so a concurrent verify with the same code succeeds at most once.
func (s *Service) Verify(
	ctx context.Context,
	req VerifyRequest,
) (*VerifyResult, error) {
	err := s.repo.InTx(ctx, func(repo Repository) error {
		code, err := repo.FindLatestUnconsumedCode(ctx, req.UserID, req.Code)
		if err != nil {
			return err
		}

		if code.IsExpired(time.Now().UTC()) {
			return ErrCodeExpired
		}

		return repo.ConsumeCode(ctx, code.ID)
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		if errors.Is(err, ErrCodeExpired) {
			return nil, ErrCodeExpired
		}
		return nil, fmt.Errorf("redeem login code: %w", err)
	}

	token, err := s.sessions.Create(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.record(ctx, req.UserID, EventLogin)

	return &VerifyResult{
		UserID:       req.UserID,
		SessionToken: token,
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

func (s *Service) issueCode(
	ctx context.Context,
	userID, destination string,
) (*CodeIssueResult, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	loginCode := &LoginCode{
		ID:        uuid.New().String(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: ComputeExpiry(time.Now().UTC(), s.codeTTL),
	}

	if err := s.repo.CreateLoginCode(ctx, loginCode); err != nil {
		return nil, fmt.Errorf("store login code: %w", err)
	}

	if err := s.notifier.Send(ctx, destination, code); err != nil {
		return nil, fmt.Errorf("send login code: %w", err)
	}

	result := &CodeIssueResult{
		UserID:    userID,
		ExpiresAt: loginCode.ExpiresAt,
	}
	if s.echoCodes {
		result.Code = code
	}

	return result, nil
}

func (s *Service) record(ctx context.Context, userID, eventType string) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, userID, eventType); err != nil {
		slog.Warn("record usage event failed",
			"event_type", eventType,
			"error", err,
		)
	}
}
