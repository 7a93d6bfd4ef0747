// Package service contains application services for accounts, sessions and
// shopping lists. Services translate repository sentinels into value-level
// results with user-facing messages; internal causes are logged and never
// shown to callers.
package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"go.uber.org/zap"

	"github.com/antonsk/shoplist/internal/crypto"
	"github.com/antonsk/shoplist/internal/errs"
	"github.com/antonsk/shoplist/internal/failable"
	"github.com/antonsk/shoplist/internal/limiter"
	"github.com/antonsk/shoplist/internal/model"
	"github.com/antonsk/shoplist/internal/repository"
)

// Messages shared between the account operations.
const (
	msgInternalError   = "Internal server error"
	msgBadCredentials  = "User, email or password incorrect"
	msgInvalidSession  = "Invalid session token"
	msgTooManyAttempts = "Too many login attempts, try again later"
)

// UserService defines account registration and authentication operations.
type UserService interface {
	// Register validates input, hashes the password and creates the account.
	Register(ctx context.Context, username, email, password string) failable.Failable[model.User]
	// Authenticate verifies a username-or-email plus password pair, with
	// per-(login, ip) lockout and an anti-enumeration response floor.
	Authenticate(ctx context.Context, login, password, ip string) failable.Failable[model.User]
	// BySessionToken resolves the user owning a raw session token.
	BySessionToken(ctx context.Context, token string) failable.Failable[model.User]
}

type UserServiceImpl struct {
	users         repository.UserRepository
	lim           limiter.Limiter
	notFoundDelay time.Duration
	log           *zap.Logger
}

// NewUserService constructs UserService with required dependencies.
func NewUserService(users repository.UserRepository, lim limiter.Limiter, notFoundDelay time.Duration, log *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{users: users, lim: lim, notFoundDelay: notFoundDelay, log: log}
}

// Register creates a new account. Uniqueness violations map to
// field-specific messages; anything else stays generic.
func (s *UserServiceImpl) Register(ctx context.Context, username, email, password string) failable.Failable[model.User] {
	if username == "" || email == "" || password == "" {
		return failable.Fail[model.User]("Username, email and password are required")
	}
	if len(username) < 3 {
		return failable.Fail[model.User]("Username must be at least 3 characters long")
	}
	if len(username) > 20 {
		return failable.Fail[model.User]("Username must be at most 20 characters long")
	}
	if !validEmail(email) {
		return failable.Fail[model.User]("Email must be a valid email address")
	}
	if len(password) < 8 {
		return failable.Fail[model.User]("Password must be at least 8 characters long")
	}
	if len(password) > 64 {
		return failable.Fail[model.User]("Password must be at most 64 characters long")
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		return failable.FailCause[model.User](msgInternalError, err)
	}

	u, err := s.users.Create(ctx, &model.User{Username: username, Email: email, PasswordHash: hash})
	switch {
	case errors.Is(err, errs.ErrUsernameTaken):
		return failable.Fail[model.User]("Username already exists")
	case errors.Is(err, errs.ErrEmailTaken):
		return failable.Fail[model.User]("Email already exists")
	case err != nil:
		s.log.Error("create user", zap.Error(err))
		return failable.FailCause[model.User](msgInternalError, err)
	}
	return failable.Ok(*u)
}

// Authenticate looks up the account by username or email and verifies the
// password. Unknown account and wrong password produce the identical
// message; the unknown-account path additionally waits a configured floor
// so response time does not reveal which check failed.
func (s *UserServiceImpl) Authenticate(ctx context.Context, login, password, ip string) failable.Failable[model.User] {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, login, ipHash)
	if err != nil {
		s.log.Error("limiter allow", zap.Error(err))
		return failable.FailCause[model.User](msgInternalError, err)
	}
	if !allowed {
		return failable.Fail[model.User](msgTooManyAttempts)
	}

	u, err := s.users.GetByLogin(ctx, login)
	if errors.Is(err, errs.ErrNotFound) {
		blocked := s.recordFailure(ctx, login, ipHash)
		s.wait(ctx)
		if blocked {
			return failable.Fail[model.User](msgTooManyAttempts)
		}
		return failable.Fail[model.User](msgBadCredentials)
	}
	if err != nil {
		s.log.Error("get user by login", zap.Error(err))
		return failable.FailCause[model.User](msgInternalError, err)
	}

	if !crypto.VerifyPassword(u.PasswordHash, password) {
		if s.recordFailure(ctx, login, ipHash) {
			return failable.Fail[model.User](msgTooManyAttempts)
		}
		return failable.Fail[model.User](msgBadCredentials)
	}

	// Best-effort counter reset.
	_ = s.lim.Success(ctx, login, ipHash)

	return failable.Ok(*u)
}

// BySessionToken hashes the raw token and resolves it to its owning user.
func (s *UserServiceImpl) BySessionToken(ctx context.Context, token string) failable.Failable[model.User] {
	u, err := s.users.GetBySessionTokenHash(ctx, crypto.HashToken(token))
	if errors.Is(err, errs.ErrNotFound) {
		return failable.Fail[model.User](msgInvalidSession)
	}
	if err != nil {
		s.log.Error("get user by session token", zap.Error(err))
		return failable.FailCause[model.User](msgInternalError, err)
	}
	return failable.Ok(*u)
}

func (s *UserServiceImpl) recordFailure(ctx context.Context, login string, ipHash []byte) bool {
	blocked, _, err := s.lim.Failure(ctx, login, ipHash)
	if err != nil {
		s.log.Error("limiter failure", zap.Error(err))
		return false
	}
	return blocked
}

// wait blocks for the configured floor, honoring context cancellation.
func (s *UserServiceImpl) wait(ctx context.Context) {
	if s.notFoundDelay <= 0 {
		return
	}
	t := time.NewTimer(s.notFoundDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
