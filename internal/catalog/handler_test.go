// AngelaMos | 2026
// handler_test.go

package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowAll(next http.Handler) http.Handler {
	return next
}

func denyAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func newTestRouter(
	sessionAuth func(http.Handler) http.Handler,
) *chi.Mux {
	handler := NewHandler(NewService(nil))

	router := chi.NewRouter()
	handler.RegisterRoutes(router, sessionAuth)
	return router
}

func TestHandlerWritesRequireSession(t *testing.T) {
	router := newTestRouter(denyAll)

	payload, err := json.Marshal(CreateNoteRequest{
		Name:   "Bergamot",
		Family: "citrus",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(
		http.MethodPost,
		"/notes",
		bytes.NewReader(payload),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerAttachNoteRejectsUnknownLevel(t *testing.T) {
	router := newTestRouter(allowAll)

	payload, err := json.Marshal(AttachNoteRequest{
		NoteID: "3f2c7a34-6f4b-4f14-9f6b-0f4fb0aeb100",
		Level:  "middle",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(
		http.MethodPost,
		"/perfumes/3f2c7a34-6f4b-4f14-9f6b-0f4fb0aeb101/notes",
		bytes.NewReader(payload),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCreatePerfumeValidation(t *testing.T) {
	router := newTestRouter(allowAll)

	// Missing brand, intensity, and price tier.
	payload, err := json.Marshal(map[string]string{"name": "Aqua Vitae"})
	require.NoError(t, err)

	req := httptest.NewRequest(
		http.MethodPost,
		"/perfumes",
		bytes.NewReader(payload),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
