package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/antonsk/shoplist/internal/crypto"
	"github.com/antonsk/shoplist/internal/errs"
	"github.com/antonsk/shoplist/internal/failable"
	"github.com/antonsk/shoplist/internal/model"
	"github.com/antonsk/shoplist/internal/repository"
)

// SessionService issues and resolves opaque bearer sessions.
type SessionService interface {
	// Create issues a random token for userID, persisting only its hash.
	// The raw token is returned exactly once.
	Create(ctx context.Context, userID int64) failable.Failable[model.NewSession]
	// ByToken resolves a raw token to its session row.
	ByToken(ctx context.Context, token string) failable.Failable[model.Session]
}

type SessionServiceImpl struct {
	sessions repository.SessionRepository
	log      *zap.Logger
}

// NewSessionService constructs SessionService.
func NewSessionService(sessions repository.SessionRepository, log *zap.Logger) *SessionServiceImpl {
	return &SessionServiceImpl{sessions: sessions, log: log}
}

// Create generates a URL-safe random token and stores its hash.
func (s *SessionServiceImpl) Create(ctx context.Context, userID int64) failable.Failable[model.NewSession] {
	token, err := crypto.NewToken()
	if err != nil {
		s.log.Error("generate session token", zap.Error(err))
		return failable.FailCause[model.NewSession](msgInternalError, err)
	}

	sess, err := s.sessions.Create(ctx, userID, crypto.HashToken(token))
	if err != nil {
		s.log.Error("create session", zap.Error(err))
		return failable.FailCause[model.NewSession](msgInternalError, err)
	}
	return failable.Ok(model.NewSession{ID: sess.ID, Token: token})
}

// ByToken hashes the raw token and looks up the session row.
func (s *SessionServiceImpl) ByToken(ctx context.Context, token string) failable.Failable[model.Session] {
	sess, err := s.sessions.GetByTokenHash(ctx, crypto.HashToken(token))
	if errors.Is(err, errs.ErrNotFound) {
		return failable.Fail[model.Session]("Session not found")
	}
	if err != nil {
		s.log.Error("get session by token", zap.Error(err))
		return failable.FailCause[model.Session](msgInternalError, err)
	}
	return failable.Ok(*sess)
}
