package postgres

import (
	"context"
	"errors"

	"github.com/antonsk/shoplist/internal/errs"
	"github.com/antonsk/shoplist/internal/model"
	"github.com/jackc/pgx/v5"
)

// SessionRepo implements SessionRepository using PostgreSQL.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Create inserts a session row holding only the token hash.
func (r *SessionRepo) Create(ctx context.Context, userID int64, tokenHash string) (*model.Session, error) {
	const q = `
INSERT INTO sessions (user_id, token_hash)
VALUES ($1, $2)
RETURNING id, user_id, token_hash, created_at`
	row := r.db.Pool.QueryRow(ctx, q, userID, tokenHash)
	var s model.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByTokenHash selects a session by its token hash.
func (r *SessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	const q = `
SELECT id, user_id, token_hash, created_at
FROM sessions
WHERE token_hash = $1
LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, tokenHash)
	var s model.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
