package repository

import (
	"context"

	"github.com/antonsk/shoplist/internal/model"
)

// SessionRepository provides access to session rows. Only token hashes are
// ever stored.
type SessionRepository interface {
	// Create inserts a session row for userID and returns it.
	Create(ctx context.Context, userID int64, tokenHash string) (*model.Session, error)
	// GetByTokenHash loads the session with the given token hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error)
}
