// AngelaMos | 2026
// repository_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/scentpath/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewRepository(db), mock
}

func TestRepositoryCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("user-1", "emailhash", "phonehash").
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at"}).AddRow(created),
		)

	user := &User{
		ID:        "user-1",
		EmailHash: "emailhash",
		PhoneHash: "phonehash",
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, created, user.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateUserDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateUser(context.Background(), &User{ID: "user-1"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindUserByEmailHashNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, email_hash, phone_hash, created_at`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email_hash", "phone_hash", "created_at"},
		))

	_, err := repo.FindUserByEmailHash(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindLatestUnconsumedCode(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "code", "expires_at", "consumed", "created_at",
	}).AddRow("code-1", "user-1", "123456", now.Add(5*time.Minute), false, now)

	mock.ExpectQuery(`SELECT id, user_id, code, expires_at, consumed`).
		WithArgs("user-1", "123456").
		WillReturnRows(rows)

	lc, err := repo.FindLatestUnconsumedCode(
		context.Background(),
		"user-1",
		"123456",
	)
	require.NoError(t, err)
	assert.Equal(t, "code-1", lc.ID)
	assert.False(t, lc.Consumed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryConsumeCode(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE login_codes`).
		WithArgs("code-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ConsumeCode(context.Background(), "code-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryInTxCommitsRedeem(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, user_id, code, expires_at, consumed`).
		WithArgs("user-1", "123456").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "code", "expires_at", "consumed", "created_at",
		}).AddRow("code-1", "user-1", "123456", now.Add(5*time.Minute), false, now))
	mock.ExpectExec(`UPDATE login_codes`).
		WithArgs("code-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InTx(context.Background(), func(tx Repository) error {
		code, err := tx.FindLatestUnconsumedCode(
			context.Background(),
			"user-1",
			"123456",
		)
		if err != nil {
			return err
		}
		return tx.ConsumeCode(context.Background(), code.ID)
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryInTxRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE login_codes`).
		WithArgs("code-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.InTx(context.Background(), func(tx Repository) error {
		return tx.ConsumeCode(context.Background(), "code-1")
	})
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryConsumeCodeAlreadySpent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE login_codes`).
		WithArgs("code-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ConsumeCode(context.Background(), "code-1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
