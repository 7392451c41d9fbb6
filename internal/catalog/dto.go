// AngelaMos | 2026
// dto.go

package catalog

import (
	"time"
)

type CreatePerfumeRequest struct {
	Name          string   `json:"name"          validate:"required,min=1,max=255"`
	Brand         string   `json:"brand"         validate:"required,min=1,max=255"`
	Gender        string   `json:"gender"        validate:"required,max=32"`
	PriceTier     string   `json:"price_tier"    validate:"required,max=32"`
	ApproxPrice   *float64 `json:"approx_price,omitempty"  validate:"omitempty,gte=0"`
	ReleaseYear   *int     `json:"release_year,omitempty"  validate:"omitempty,gte=1700,lte=2100"`
	Concentration *string  `json:"concentration,omitempty" validate:"omitempty,max=64"`
	Intensity     string   `json:"intensity"     validate:"required,max=32"`
	Seasons       []string `json:"seasons,omitempty"       validate:"omitempty,dive,max=32"`
	Climates      []string `json:"climates,omitempty"      validate:"omitempty,dive,max=32"`
	ExternalID    *string  `json:"external_id,omitempty"   validate:"omitempty,max=128"`
}

type UpdatePerfumeRequest struct {
	Name          *string  `json:"name,omitempty"          validate:"omitempty,min=1,max=255"`
	Brand         *string  `json:"brand,omitempty"         validate:"omitempty,min=1,max=255"`
	Gender        *string  `json:"gender,omitempty"        validate:"omitempty,max=32"`
	PriceTier     *string  `json:"price_tier,omitempty"    validate:"omitempty,max=32"`
	ApproxPrice   *float64 `json:"approx_price,omitempty"  validate:"omitempty,gte=0"`
	ReleaseYear   *int     `json:"release_year,omitempty"  validate:"omitempty,gte=1700,lte=2100"`
	Concentration *string  `json:"concentration,omitempty" validate:"omitempty,max=64"`
	Intensity     *string  `json:"intensity,omitempty"     validate:"omitempty,max=32"`
	Seasons       []string `json:"seasons,omitempty"       validate:"omitempty,dive,max=32"`
	Climates      []string `json:"climates,omitempty"      validate:"omitempty,dive,max=32"`
	ExternalID    *string  `json:"external_id,omitempty"   validate:"omitempty,max=128"`
}

type CreateNoteRequest struct {
	Name   string `json:"name"   validate:"required,min=1,max=255"`
	Family string `json:"family" validate:"required,max=64"`
}

type UpdateNoteRequest struct {
	Name   *string `json:"name,omitempty"   validate:"omitempty,min=1,max=255"`
	Family *string `json:"family,omitempty" validate:"omitempty,max=64"`
}

type AttachNoteRequest struct {
	NoteID string `json:"note_id" validate:"required,uuid"`
	Level  string `json:"level"   validate:"required,oneof=top heart base"`
}

type PerfumeResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Gender        string    `json:"gender"`
	PriceTier     string    `json:"price_tier"`
	ApproxPrice   *float64  `json:"approx_price,omitempty"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	Concentration *string   `json:"concentration,omitempty"`
	Intensity     string    `json:"intensity"`
	Seasons       []string  `json:"seasons"`
	Climates      []string  `json:"climates"`
	ExternalID    *string   `json:"external_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Family    string    `json:"family"`
	CreatedAt time.Time `json:"created_at"`
}

type ListPerfumesParams struct {
	Page      int
	PageSize  int
	Brand     string
	Gender    string
	PriceTier string
	Search    string
}

func (p *ListPerfumesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListPerfumesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToPerfumeResponse(p *Perfume) PerfumeResponse {
	return PerfumeResponse{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Gender:        p.Gender,
		PriceTier:     p.PriceTier,
		ApproxPrice:   p.ApproxPrice,
		ReleaseYear:   p.ReleaseYear,
		Concentration: p.Concentration,
		Intensity:     p.Intensity,
		Seasons:       p.Seasons,
		Climates:      p.Climates,
		ExternalID:    p.ExternalID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToPerfumeResponseList(perfumes []Perfume) []PerfumeResponse {
	responses := make([]PerfumeResponse, 0, len(perfumes))
	for _, p := range perfumes {
		responses = append(responses, ToPerfumeResponse(&p))
	}
	return responses
}

func ToNoteResponse(n *Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Name:      n.Name,
		Family:    n.Family,
		CreatedAt: n.CreatedAt,
	}
}

func ToNoteResponseList(notes []Note) []NoteResponse {
	responses := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, ToNoteResponse(&n))
	}
	return responses
}
