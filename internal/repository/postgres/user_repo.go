package postgres

import (
	"context"
	"errors"

	"github.com/antonsk/shoplist/internal/errs"
	"github.com/antonsk/shoplist/internal/model"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. Which unique constraint fired decides the
// sentinel, so the caller can report the offending field.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, username, email, password_hash, created_at`
	row := r.db.Pool.QueryRow(ctx, q, u.Username, u.Email, u.PasswordHash)
	var out model.User
	if err := row.Scan(&out.ID, &out.Username, &out.Email, &out.PasswordHash, &out.CreatedAt); err != nil {
		switch uniqueConstraint(err) {
		case "users_username_unique":
			return nil, errs.ErrUsernameTaken
		case "users_email_unique":
			return nil, errs.ErrEmailTaken
		}
		return nil, err
	}
	return &out, nil
}

// GetByLogin selects a user by username or email, case-sensitive as stored.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const q = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE username = $1 OR email = $1
LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, login)
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetBySessionTokenHash selects the user owning the session with the given
// token hash.
func (r *UserRepo) GetBySessionTokenHash(ctx context.Context, tokenHash string) (*model.User, error) {
	const q = `
SELECT users.id, users.username, users.email, users.password_hash, users.created_at
FROM users
INNER JOIN sessions ON users.id = sessions.user_id
WHERE sessions.token_hash = $1
LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, tokenHash)
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
