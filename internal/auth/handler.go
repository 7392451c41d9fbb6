// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/scentpath/internal/config"
	"github.com/carterperez-dev/scentpath/internal/core"
	"github.com/carterperez-dev/scentpath/internal/middleware"
)

type Handler struct {
	service       *Service
	validator     *validator.Validate
	cookieCfg     config.SessionConfig
	secureCookies bool
}

func NewHandler(
	service *Service,
	cookieCfg config.SessionConfig,
	secureCookies bool,
) *Handler {
	return &Handler{
		service:       service,
		validator:     validator.New(validator.WithRequiredStructEnabled()),
		cookieCfg:     cookieCfg,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	sessionAuth func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/verify", h.Verify)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Get("/me", h.GetMe)
			r.Post("/logout", h.Logout)
		})
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			core.JSONError(w, core.DuplicateError("account"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, CodeIssuedResponse{
		UserID:    result.UserID,
		OTPCode:   result.Code,
		ExpiresAt: result.ExpiresAt,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, CodeIssuedResponse{
		UserID:    result.UserID,
		OTPCode:   result.Code,
		ExpiresAt: result.ExpiresAt,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Verify(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			core.Unauthorized(w, "invalid or expired code")
			return
		}
		if errors.Is(err, ErrCodeExpired) {
			core.Unauthorized(w, "code expired")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.setSessionCookie(w, result.SessionToken)

	core.OK(w, VerifyResponse{Message: "login successful"})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieCfg.CookieName)
	if err == nil && cookie.Value != "" {
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			core.InternalServerError(w, logoutErr)
			return
		}
	}

	h.clearSessionCookie(w)

	core.NoContent(w)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserResponse{
		ID:        user.ID,
		EmailHash: user.EmailHash,
		PhoneHash: user.PhoneHash,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieCfg.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieCfg.CookieDomain,
		MaxAge:   int(h.cookieCfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieCfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieCfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
