// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/scentpath/internal/config"
	"github.com/carterperez-dev/scentpath/internal/core"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*User // keyed by ID
	codes map[string]*LoginCode
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: make(map[string]*User),
		codes: make(map[string]*LoginCode),
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.EmailHash == user.EmailHash {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepo) FindUserByEmailHash(
	_ context.Context,
	emailHash string,
) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.EmailHash == emailHash {
			return user, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) FindUserByID(_ context.Context, id string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepo) CreateLoginCode(_ context.Context, code *LoginCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	code.CreatedAt = time.Now().UTC()
	f.codes[code.ID] = code
	return nil
}

func (f *fakeRepo) FindLatestUnconsumedCode(
	_ context.Context,
	userID, code string,
) (*LoginCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []*LoginCode
	for _, lc := range f.codes {
		if lc.UserID == userID && lc.Code == code && !lc.Consumed {
			matches = append(matches, lc)
		}
	}
	if len(matches) == 0 {
		return nil, core.ErrNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	found := *matches[0]
	return &found, nil
}

func (f *fakeRepo) ConsumeCode(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lc, ok := f.codes[id]
	if !ok || lc.Consumed {
		return core.ErrNotFound
	}
	lc.Consumed = true
	return nil
}

func (f *fakeRepo) InTx(
	_ context.Context,
	fn func(Repository) error,
) error {
	return fn(f)
}

type fakeSessions struct {
	mu      sync.Mutex
	counter int
	active  map[string]string // token -> userID
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{active: make(map[string]string)}
}

func (f *fakeSessions) Create(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counter++
	token := fmt.Sprintf("token-%d", f.counter)
	f.active[token] = userID
	return token, nil
}

func (f *fakeSessions) Destroy(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.active, token)
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends []struct{ destination, code string }
}

func (f *fakeNotifier) Send(_ context.Context, destination, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sends = append(f.sends, struct{ destination, code string }{destination, code})
	return nil
}

type fakeEvents struct {
	mu      sync.Mutex
	entries []string
}

func (f *fakeEvents) Record(_ context.Context, userID, eventType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, eventType)
	return nil
}

func newTestService(echo bool) (*Service, *fakeRepo, *fakeSessions, *fakeNotifier, *fakeEvents) {
	repo := newFakeRepo()
	sessions := newFakeSessions()
	notifier := &fakeNotifier{}
	events := &fakeEvents{}

	svc := NewService(repo, sessions, notifier, events, config.OTPConfig{
		CodeTTL:   5 * time.Minute,
		EchoCodes: echo,
	})

	return svc, repo, sessions, notifier, events
}

func TestSignupCreatesUserAndCode(t *testing.T) {
	svc, repo, _, notifier, events := newTestService(true)
	ctx := context.Background()

	result, err := svc.Signup(ctx, SignupRequest{
		Email: "A@Test.com",
		Phone: "(555) 123-4567",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.Code, CodeLength)
	assert.True(t, result.ExpiresAt.After(time.Now().UTC()))

	user, err := repo.FindUserByID(ctx, result.UserID)
	require.NoError(t, err)
	assert.Equal(t,
		core.HashIdentifier("a@test.com"),
		user.EmailHash,
	)
	assert.Equal(t,
		core.HashIdentifier("5551234567"),
		user.PhoneHash,
	)

	require.Len(t, notifier.sends, 1)
	assert.Equal(t, "5551234567", notifier.sends[0].destination)
	assert.Equal(t, result.Code, notifier.sends[0].code)

	assert.Contains(t, events.entries, EventSignup)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	// Case and whitespace variants hash to the same identifier.
	variants := []string{"a@test.com", "A@Test.com", " a@test.com "}
	for _, email := range variants {
		_, err := svc.Signup(ctx, SignupRequest{
			Email: email,
			Phone: "5551234567",
		})
		assert.ErrorIs(t, err, ErrAccountExists, "variant %q", email)
	}
}

func TestSignupCodeSuppressedWithoutEcho(t *testing.T) {
	svc, _, _, notifier, _ := newTestService(false)

	result, err := svc.Signup(context.Background(), SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	assert.Empty(t, result.Code)

	// The notifier still carries the real code.
	require.Len(t, notifier.sends, 1)
	assert.Len(t, notifier.sends[0].code, CodeLength)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _, _, _, _ := newTestService(true)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "nobody@test.com",
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLoginLeavesOutstandingCodesUsable(t *testing.T) {
	svc, _, _, _, _ := newTestService(true)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	// Trailing whitespace resolves to the same account.
	login, err := svc.Login(ctx, LoginRequest{Email: "a@test.com "})
	require.NoError(t, err)
	assert.Equal(t, signup.UserID, login.UserID)

	// Both codes redeem independently.
	_, err = svc.Verify(ctx, VerifyRequest{
		UserID: signup.UserID,
		Code:   signup.Code,
	})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, VerifyRequest{
		UserID: login.UserID,
		Code:   login.Code,
	})
	require.NoError(t, err)
}

func TestVerifyConsumesCodeExactlyOnce(t *testing.T) {
	svc, _, sessions, _, events := newTestService(true)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	result, err := svc.Verify(ctx, VerifyRequest{
		UserID: signup.UserID,
		Code:   signup.Code,
	})
	require.NoError(t, err)
	assert.Equal(t, signup.UserID, result.UserID)
	assert.NotEmpty(t, result.SessionToken)
	assert.Equal(t, signup.UserID, sessions.active[result.SessionToken])
	assert.Contains(t, events.entries, EventLogin)

	// Replay fails.
	_, err = svc.Verify(ctx, VerifyRequest{
		UserID: signup.UserID,
		Code:   signup.Code,
	})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyWrongCodeDoesNotMutate(t *testing.T) {
	svc, repo, _, _, _ := newTestService(true)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	wrong := "000000"
	if signup.Code == wrong {
		wrong = "000001"
	}

	_, err = svc.Verify(ctx, VerifyRequest{
		UserID: signup.UserID,
		Code:   wrong,
	})
	assert.ErrorIs(t, err, ErrInvalidCode)

	// The real code is still unconsumed.
	lc, err := repo.FindLatestUnconsumedCode(ctx, signup.UserID, signup.Code)
	require.NoError(t, err)
	assert.False(t, lc.Consumed)
}

func TestVerifyExpiredCodeLeftUnconsumed(t *testing.T) {
	svc, repo, _, _, _ := newTestService(true)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	// Force the stored code into the past.
	repo.mu.Lock()
	for _, lc := range repo.codes {
		lc.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}
	repo.mu.Unlock()

	_, err = svc.Verify(ctx, VerifyRequest{
		UserID: signup.UserID,
		Code:   signup.Code,
	})
	assert.ErrorIs(t, err, ErrCodeExpired)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, lc := range repo.codes {
		assert.False(t, lc.Consumed)
	}
}

func TestVerifyConcurrentSucceedsAtMostOnce(t *testing.T) {
	svc, _, _, _, _ := newTestService(true)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Verify(ctx, VerifyRequest{
				UserID: signup.UserID,
				Code:   signup.Code,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInvalidCode)
		}
	}

	assert.Equal(t, 1, succeeded)
}

func TestLogoutDestroysSession(t *testing.T) {
	svc, _, sessions, _, _ := newTestService(true)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.NoError(t, err)

	result, err := svc.Verify(ctx, VerifyRequest{
		UserID: signup.UserID,
		Code:   signup.Code,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.SessionToken))
	assert.NotContains(t, sessions.active, result.SessionToken)
}

func TestGetCurrentUserUnknown(t *testing.T) {
	svc, _, _, _, _ := newTestService(true)

	_, err := svc.GetCurrentUser(context.Background(), "missing")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
