package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/antonsk/shoplist/internal/errs"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var sessionCols = []string{"id", "user_id", "token_hash", "created_at"}

func TestSessionRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSessionRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO sessions \(user_id, token_hash\) VALUES \(\$1, \$2\) RETURNING id, user_id, token_hash, created_at`).
		WithArgs(int64(5), "hash-abc").
		WillReturnRows(pgxmock.NewRows(sessionCols).
			AddRow(int64(11), int64(5), "hash-abc", time.Now()))

	s, err := r.Create(ctx, 5, "hash-abc")
	require.NoError(t, err)
	require.Equal(t, int64(11), s.ID)
	require.Equal(t, int64(5), s.UserID)
	require.Equal(t, "hash-abc", s.TokenHash)
}

func TestSessionRepo_GetByTokenHash(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSessionRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, user_id, token_hash, created_at FROM sessions WHERE token_hash = \$1 LIMIT 1`).
		WithArgs("hash-abc").
		WillReturnRows(pgxmock.NewRows(sessionCols).
			AddRow(int64(11), int64(5), "hash-abc", time.Now()))
	s, err := r.GetByTokenHash(ctx, "hash-abc")
	require.NoError(t, err)
	require.Equal(t, int64(11), s.ID)

	mock.ExpectQuery(`SELECT id, user_id, token_hash, created_at FROM sessions WHERE token_hash = \$1 LIMIT 1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByTokenHash(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
