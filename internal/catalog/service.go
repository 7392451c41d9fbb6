// AngelaMos | 2026
// service.go

package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePerfume(
	ctx context.Context,
	req CreatePerfumeRequest,
) (*Perfume, error) {
	perfume := &Perfume{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Brand:         req.Brand,
		Gender:        req.Gender,
		PriceTier:     req.PriceTier,
		ApproxPrice:   req.ApproxPrice,
		ReleaseYear:   req.ReleaseYear,
		Concentration: req.Concentration,
		Intensity:     req.Intensity,
		Seasons:       req.Seasons,
		Climates:      req.Climates,
		ExternalID:    req.ExternalID,
	}

	if err := s.repo.CreatePerfume(ctx, perfume); err != nil {
		return nil, err
	}

	return perfume, nil
}

func (s *Service) GetPerfume(
	ctx context.Context,
	id string,
) (*Perfume, error) {
	return s.repo.GetPerfume(ctx, id)
}

func (s *Service) UpdatePerfume(
	ctx context.Context,
	id string,
	req UpdatePerfumeRequest,
) (*Perfume, error) {
	perfume, err := s.repo.GetPerfume(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		perfume.Name = *req.Name
	}
	if req.Brand != nil {
		perfume.Brand = *req.Brand
	}
	if req.Gender != nil {
		perfume.Gender = *req.Gender
	}
	if req.PriceTier != nil {
		perfume.PriceTier = *req.PriceTier
	}
	if req.ApproxPrice != nil {
		perfume.ApproxPrice = req.ApproxPrice
	}
	if req.ReleaseYear != nil {
		perfume.ReleaseYear = req.ReleaseYear
	}
	if req.Concentration != nil {
		perfume.Concentration = req.Concentration
	}
	if req.Intensity != nil {
		perfume.Intensity = *req.Intensity
	}
	if req.Seasons != nil {
		perfume.Seasons = req.Seasons
	}
	if req.Climates != nil {
		perfume.Climates = req.Climates
	}
	if req.ExternalID != nil {
		perfume.ExternalID = req.ExternalID
	}

	if err := s.repo.UpdatePerfume(ctx, perfume); err != nil {
		return nil, err
	}

	return perfume, nil
}

func (s *Service) DeletePerfume(ctx context.Context, id string) error {
	return s.repo.DeletePerfume(ctx, id)
}

func (s *Service) ListPerfumes(
	ctx context.Context,
	params ListPerfumesParams,
) ([]Perfume, int, error) {
	return s.repo.ListPerfumes(ctx, params)
}

func (s *Service) CreateNote(
	ctx context.Context,
	req CreateNoteRequest,
) (*Note, error) {
	note := &Note{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Family: req.Family,
	}

	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *Service) GetNote(ctx context.Context, id string) (*Note, error) {
	return s.repo.GetNote(ctx, id)
}

func (s *Service) UpdateNote(
	ctx context.Context,
	id string,
	req UpdateNoteRequest,
) (*Note, error) {
	note, err := s.repo.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		note.Name = *req.Name
	}
	if req.Family != nil {
		note.Family = *req.Family
	}

	if err := s.repo.UpdateNote(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return s.repo.DeleteNote(ctx, id)
}

func (s *Service) ListNotes(
	ctx context.Context,
	family string,
) ([]Note, error) {
	return s.repo.ListNotes(ctx, family)
}

func (s *Service) AttachNote(
	ctx context.Context,
	perfumeID string,
	req AttachNoteRequest,
) error {
	// Surface a missing perfume before the FK error would.
	if _, err := s.repo.GetPerfume(ctx, perfumeID); err != nil {
		return err
	}

	return s.repo.AttachNote(ctx, perfumeID, req.NoteID, req.Level)
}

func (s *Service) DetachNote(
	ctx context.Context,
	perfumeID, noteID string,
) error {
	return s.repo.DetachNote(ctx, perfumeID, noteID)
}

func (s *Service) ListPerfumeNotes(
	ctx context.Context,
	perfumeID string,
) ([]NoteWithLevel, error) {
	if _, err := s.repo.GetPerfume(ctx, perfumeID); err != nil {
		return nil, err
	}

	return s.repo.ListPerfumeNotes(ctx, perfumeID)
}

func (s *Service) ListNotePerfumes(
	ctx context.Context,
	noteID string,
) ([]Perfume, error) {
	if _, err := s.repo.GetNote(ctx, noteID); err != nil {
		return nil, err
	}

	return s.repo.ListNotePerfumes(ctx, noteID)
}
