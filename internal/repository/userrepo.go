// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/antonsk/shoplist/internal/model"
)

// UserRepository provides access to user rows.
type UserRepository interface {
	// Create inserts a new user. Uniqueness violations surface as
	// errs.ErrUsernameTaken or errs.ErrEmailTaken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// GetByLogin loads a user whose username or email equals login,
	// case-sensitive as stored.
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	// GetBySessionTokenHash loads the user owning the session with the
	// given token hash.
	GetBySessionTokenHash(ctx context.Context, tokenHash string) (*model.User, error)
}
