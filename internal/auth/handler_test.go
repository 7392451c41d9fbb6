// AngelaMos | 2026
// handler_test.go

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/scentpath/internal/config"
	"github.com/carterperez-dev/scentpath/internal/core"
	"github.com/carterperez-dev/scentpath/internal/middleware"
)

func (f *fakeSessions) Validate(
	_ context.Context,
	token string,
) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	userID, ok := f.active[token]
	if !ok {
		return "", core.ErrUnauthorized
	}
	return userID, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *fakeSessions) {
	t.Helper()

	svc, _, sessions, _, _ := newTestService(true)

	cookieCfg := config.SessionConfig{
		TTL:        time.Hour,
		CookieName: "session_token",
	}
	handler := NewHandler(svc, cookieCfg, false)

	router := chi.NewRouter()
	sessionAuth := middleware.SessionAuth(cookieCfg.CookieName, sessions)
	handler.RegisterRoutes(router, sessionAuth)

	return router, sessions
}

func postJSON(
	t *testing.T,
	router http.Handler,
	path string,
	body any,
	cookies ...*http.Cookie,
) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHandlerSignupVerifyFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/auth/signup", SignupRequest{
		Email: "A@Test.com",
		Phone: "(555) 123-4567",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var issued CodeIssuedResponse
	decodeData(t, rec, &issued)
	assert.NotEmpty(t, issued.UserID)
	assert.Len(t, issued.OTPCode, CodeLength)

	rec = postJSON(t, router, "/auth/verify", VerifyRequest{
		UserID: issued.UserID,
		Code:   issued.OTPCode,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_token" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, sessionCookie.SameSite)

	// The session cookie authenticates /auth/me.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(sessionCookie)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusOK, meRec.Code)

	var me UserResponse
	decodeData(t, meRec, &me)
	assert.Equal(t, issued.UserID, me.ID)
	assert.Equal(t, core.HashIdentifier("a@test.com"), me.EmailHash)
}

func TestHandlerSignupDuplicate(t *testing.T) {
	router, _ := newTestRouter(t)

	req := SignupRequest{Email: "a@test.com", Phone: "5551234567"}

	rec := postJSON(t, router, "/auth/signup", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/auth/signup", req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var envelope core.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestHandlerSignupValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/auth/signup", SignupRequest{Email: "a@test.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerLoginUnknownAccount(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/auth/login", LoginRequest{
		Email: "nobody@test.com",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerVerifyWrongCode(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/auth/signup", SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var issued CodeIssuedResponse
	decodeData(t, rec, &issued)

	wrong := "000000"
	if issued.OTPCode == wrong {
		wrong = "000001"
	}

	rec = postJSON(t, router, "/auth/verify", VerifyRequest{
		UserID: issued.UserID,
		Code:   wrong,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerVerifyMalformedCode(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/auth/verify", map[string]string{
		"user_id": "3f2c7a34-6f4b-4f14-9f6b-0f4fb0aeb100",
		"code":    "12345", // five digits
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerMeRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerLogout(t *testing.T) {
	router, sessions := newTestRouter(t)

	rec := postJSON(t, router, "/auth/signup", SignupRequest{
		Email: "a@test.com",
		Phone: "5551234567",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var issued CodeIssuedResponse
	decodeData(t, rec, &issued)

	rec = postJSON(t, router, "/auth/verify", VerifyRequest{
		UserID: issued.UserID,
		Code:   issued.OTPCode,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_token" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	rec = postJSON(t, router, "/auth/logout", struct{}{}, sessionCookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, sessions.active)

	// The cleared cookie is expired.
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_token" {
			assert.Less(t, c.MaxAge, 0)
		}
	}
}
