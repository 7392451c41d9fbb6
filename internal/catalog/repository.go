// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/scentpath/internal/core"
)

type Repository interface {
	CreatePerfume(ctx context.Context, perfume *Perfume) error
	GetPerfume(ctx context.Context, id string) (*Perfume, error)
	UpdatePerfume(ctx context.Context, perfume *Perfume) error
	DeletePerfume(ctx context.Context, id string) error
	ListPerfumes(
		ctx context.Context,
		params ListPerfumesParams,
	) ([]Perfume, int, error)

	CreateNote(ctx context.Context, note *Note) error
	GetNote(ctx context.Context, id string) (*Note, error)
	UpdateNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, family string) ([]Note, error)

	AttachNote(ctx context.Context, perfumeID, noteID, level string) error
	DetachNote(ctx context.Context, perfumeID, noteID string) error
	ListPerfumeNotes(
		ctx context.Context,
		perfumeID string,
	) ([]NoteWithLevel, error)
	ListNotePerfumes(ctx context.Context, noteID string) ([]Perfume, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const perfumeColumns = `
	id, name, brand, gender, price_tier, approx_price, release_year,
	concentration, intensity, seasons, climates, external_id,
	created_at, updated_at`

func (r *repository) CreatePerfume(
	ctx context.Context,
	perfume *Perfume,
) error {
	query := `
		INSERT INTO perfumes (
			id, name, brand, gender, price_tier, approx_price, release_year,
			concentration, intensity, seasons, climates, external_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		perfume.ID,
		perfume.Name,
		perfume.Brand,
		perfume.Gender,
		perfume.PriceTier,
		perfume.ApproxPrice,
		perfume.ReleaseYear,
		perfume.Concentration,
		perfume.Intensity,
		perfume.Seasons,
		perfume.Climates,
		perfume.ExternalID,
	)
	if err := row.Scan(&perfume.CreatedAt, &perfume.UpdatedAt); err != nil {
		return fmt.Errorf("create perfume: %w", err)
	}

	return nil
}

func (r *repository) GetPerfume(
	ctx context.Context,
	id string,
) (*Perfume, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM perfumes WHERE id = $1`,
		perfumeColumns,
	)

	var perfume Perfume
	err := r.db.GetContext(ctx, &perfume, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get perfume: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get perfume: %w", err)
	}

	return &perfume, nil
}

func (r *repository) UpdatePerfume(
	ctx context.Context,
	perfume *Perfume,
) error {
	query := `
		UPDATE perfumes
		SET name = $2, brand = $3, gender = $4, price_tier = $5,
		    approx_price = $6, release_year = $7, concentration = $8,
		    intensity = $9, seasons = $10, climates = $11, external_id = $12,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		perfume.ID,
		perfume.Name,
		perfume.Brand,
		perfume.Gender,
		perfume.PriceTier,
		perfume.ApproxPrice,
		perfume.ReleaseYear,
		perfume.Concentration,
		perfume.Intensity,
		perfume.Seasons,
		perfume.Climates,
		perfume.ExternalID,
	)
	err := row.Scan(&perfume.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update perfume: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update perfume: %w", err)
	}

	return nil
}

func (r *repository) DeletePerfume(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM perfumes WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete perfume: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete perfume: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete perfume: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPerfumes(
	ctx context.Context,
	params ListPerfumesParams,
) ([]Perfume, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("brand = $%d", argIdx))
		args = append(args, params.Brand)
		argIdx++
	}

	if params.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", argIdx))
		args = append(args, params.Gender)
		argIdx++
	}

	if params.PriceTier != "" {
		conditions = append(conditions, fmt.Sprintf("price_tier = $%d", argIdx))
		args = append(args, params.PriceTier)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR brand ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM perfumes WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count perfumes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM perfumes
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		perfumeColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var perfumes []Perfume
	if err := r.db.SelectContext(ctx, &perfumes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list perfumes: %w", err)
	}

	return perfumes, total, nil
}

func (r *repository) CreateNote(ctx context.Context, note *Note) error {
	query := `
		INSERT INTO notes (id, name, family)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &note.CreatedAt, query,
		note.ID,
		note.Name,
		note.Family,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create note: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

func (r *repository) GetNote(ctx context.Context, id string) (*Note, error) {
	query := `SELECT id, name, family, created_at FROM notes WHERE id = $1`

	var note Note
	err := r.db.GetContext(ctx, &note, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get note: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &note, nil
}

func (r *repository) UpdateNote(ctx context.Context, note *Note) error {
	query := `
		UPDATE notes
		SET name = $2, family = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, note.ID, note.Name, note.Family)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update note: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update note: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteNote(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete note: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListNotes(
	ctx context.Context,
	family string,
) ([]Note, error) {
	query := `SELECT id, name, family, created_at FROM notes`
	var args []any

	if family != "" {
		query += ` WHERE family = $1`
		args = append(args, family)
	}

	query += ` ORDER BY name ASC`

	var notes []Note
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// AttachNote upserts on the (perfume_id, note_id) pair, so re-attaching a
// note just moves it to the new level.
func (r *repository) AttachNote(
	ctx context.Context,
	perfumeID, noteID, level string,
) error {
	query := `
		INSERT INTO perfume_notes (perfume_id, note_id, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (perfume_id, note_id) DO UPDATE SET level = EXCLUDED.level`

	if _, err := r.db.ExecContext(ctx, query, perfumeID, noteID, level); err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("attach note: %w", core.ErrNotFound)
		}
		return fmt.Errorf("attach note: %w", err)
	}

	return nil
}

func (r *repository) DetachNote(
	ctx context.Context,
	perfumeID, noteID string,
) error {
	query := `
		DELETE FROM perfume_notes
		WHERE perfume_id = $1 AND note_id = $2`

	result, err := r.db.ExecContext(ctx, query, perfumeID, noteID)
	if err != nil {
		return fmt.Errorf("detach note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("detach note: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("detach note: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPerfumeNotes(
	ctx context.Context,
	perfumeID string,
) ([]NoteWithLevel, error) {
	query := `
		SELECT n.id, n.name, n.family, pn.level
		FROM perfume_notes pn
		JOIN notes n ON n.id = pn.note_id
		WHERE pn.perfume_id = $1
		ORDER BY pn.level, n.name`

	var notes []NoteWithLevel
	if err := r.db.SelectContext(ctx, &notes, query, perfumeID); err != nil {
		return nil, fmt.Errorf("list perfume notes: %w", err)
	}

	return notes, nil
}

func (r *repository) ListNotePerfumes(
	ctx context.Context,
	noteID string,
) ([]Perfume, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM perfumes p
		JOIN perfume_notes pn ON pn.perfume_id = p.id
		WHERE pn.note_id = $1
		ORDER BY p.name`,
		prefixColumns(perfumeColumns, "p"))

	var perfumes []Perfume
	if err := r.db.SelectContext(ctx, &perfumes, query, noteID); err != nil {
		return nil, fmt.Errorf("list note perfumes: %w", err)
	}

	return perfumes, nil
}

func prefixColumns(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
