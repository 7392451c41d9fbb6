// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/scentpath/internal/core"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByEmailHash(ctx context.Context, emailHash string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	CreateLoginCode(ctx context.Context, code *LoginCode) error
	FindLatestUnconsumedCode(
		ctx context.Context,
		userID, code string,
	) (*LoginCode, error)
	ConsumeCode(ctx context.Context, id string) error

	// InTx runs fn against a transactional view of the repository; fn
	// returning an error rolls the transaction back.
	InTx(ctx context.Context, fn func(Repository) error) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email_hash, phone_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &user.CreatedAt, query,
		user.ID,
		user.EmailHash,
		user.PhoneHash,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) FindUserByEmailHash(
	ctx context.Context,
	emailHash string,
) (*User, error) {
	query := `
		SELECT id, email_hash, phone_hash, created_at
		FROM users
		WHERE email_hash = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, emailHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find user by email hash: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email hash: %w", err)
	}

	return &user, nil
}

func (r *repository) FindUserByID(
	ctx context.Context,
	id string,
) (*User, error) {
	query := `
		SELECT id, email_hash, phone_hash, created_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

func (r *repository) CreateLoginCode(
	ctx context.Context,
	code *LoginCode,
) error {
	query := `
		INSERT INTO login_codes (id, user_id, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &code.CreatedAt, query,
		code.ID,
		code.UserID,
		code.Code,
		code.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create login code: %w", err)
	}

	return nil
}

func (r *repository) FindLatestUnconsumedCode(
	ctx context.Context,
	userID, code string,
) (*LoginCode, error) {
	query := `
		SELECT id, user_id, code, expires_at, consumed, created_at
		FROM login_codes
		WHERE user_id = $1 AND code = $2 AND consumed = false
		ORDER BY created_at DESC
		LIMIT 1`

	var loginCode LoginCode
	err := r.db.GetContext(ctx, &loginCode, query, userID, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find login code: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find login code: %w", err)
	}

	return &loginCode, nil
}

// ConsumeCode flips the consumed flag with a conditional write. Exactly one
// of two concurrent verify calls observes RowsAffected == 1; the other gets
// ErrNotFound.
func (r *repository) ConsumeCode(ctx context.Context, id string) error {
	query := `
		UPDATE login_codes
		SET consumed = true
		WHERE id = $1 AND consumed = false`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("consume login code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume login code: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("consume login code: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) InTx(
	ctx context.Context,
	fn func(Repository) error,
) error {
	db, ok := r.db.(*sqlx.DB)
	if !ok {
		// Already inside a transaction.
		return fn(r)
	}

	return core.InTx(ctx, db, func(tx *sqlx.Tx) error {
		return fn(&repository{db: tx})
	})
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
