// AngelaMos | 2026
// handler.go

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/scentpath/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the catalog surface. Reads are public; writes
// require a session.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	sessionAuth func(http.Handler) http.Handler,
) {
	r.Route("/perfumes", func(r chi.Router) {
		r.Get("/", h.ListPerfumes)
		r.Get("/{perfumeID}", h.GetPerfume)
		r.Get("/{perfumeID}/notes", h.ListPerfumeNotes)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Post("/", h.CreatePerfume)
			r.Put("/{perfumeID}", h.UpdatePerfume)
			r.Delete("/{perfumeID}", h.DeletePerfume)
			r.Post("/{perfumeID}/notes", h.AttachNote)
			r.Delete("/{perfumeID}/notes/{noteID}", h.DetachNote)
		})
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.ListNotes)
		r.Get("/{noteID}", h.GetNote)
		r.Get("/{noteID}/perfumes", h.ListNotePerfumes)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Post("/", h.CreateNote)
			r.Put("/{noteID}", h.UpdateNote)
			r.Delete("/{noteID}", h.DeleteNote)
		})
	})
}

func (h *Handler) CreatePerfume(w http.ResponseWriter, r *http.Request) {
	var req CreatePerfumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	perfume, err := h.service.CreatePerfume(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPerfumeResponse(perfume))
}

func (h *Handler) GetPerfume(w http.ResponseWriter, r *http.Request) {
	perfume, err := h.service.GetPerfume(r.Context(), chi.URLParam(r, "perfumeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "perfume")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPerfumeResponse(perfume))
}

func (h *Handler) UpdatePerfume(w http.ResponseWriter, r *http.Request) {
	var req UpdatePerfumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	perfume, err := h.service.UpdatePerfume(
		r.Context(),
		chi.URLParam(r, "perfumeID"),
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "perfume")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPerfumeResponse(perfume))
}

func (h *Handler) DeletePerfume(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeletePerfume(r.Context(), chi.URLParam(r, "perfumeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "perfume")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListPerfumes(w http.ResponseWriter, r *http.Request) {
	params := ListPerfumesParams{
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "page_size", 20),
		Brand:     r.URL.Query().Get("brand"),
		Gender:    r.URL.Query().Get("gender"),
		PriceTier: r.URL.Query().Get("price_tier"),
		Search:    r.URL.Query().Get("search"),
	}

	perfumes, total, err := h.service.ListPerfumes(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToPerfumeResponseList(perfumes),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	note, err := h.service.CreateNote(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("note"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToNoteResponse(note))
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.service.GetNote(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "note")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToNoteResponse(note))
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	note, err := h.service.UpdateNote(r.Context(), chi.URLParam(r, "noteID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "note")
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("note"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToNoteResponse(note))
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteNote(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "note")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListNotes(
		r.Context(),
		r.URL.Query().Get("family"),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToNoteResponseList(notes))
}

func (h *Handler) AttachNote(w http.ResponseWriter, r *http.Request) {
	var req AttachNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.AttachNote(r.Context(), chi.URLParam(r, "perfumeID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "perfume or note")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) DetachNote(w http.ResponseWriter, r *http.Request) {
	err := h.service.DetachNote(
		r.Context(),
		chi.URLParam(r, "perfumeID"),
		chi.URLParam(r, "noteID"),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "perfume note link")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListPerfumeNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListPerfumeNotes(
		r.Context(),
		chi.URLParam(r, "perfumeID"),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "perfume")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, notes)
}

func (h *Handler) ListNotePerfumes(w http.ResponseWriter, r *http.Request) {
	perfumes, err := h.service.ListNotePerfumes(
		r.Context(),
		chi.URLParam(r, "noteID"),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "note")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPerfumeResponseList(perfumes))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
