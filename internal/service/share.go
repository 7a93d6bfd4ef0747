package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidShareToken is returned for expired, malformed or forged share
// tokens.
var ErrInvalidShareToken = errors.New("invalid share token")

// ShareService issues and verifies signed read-only share links for
// shopping lists. A share token grants access to a single list via its
// public id, without any session.
type ShareService interface {
	// IssueListToken signs a share token for a list's public id.
	IssueListToken(publicID string) (token string, expiresAt time.Time, err error)
	// VerifyListToken validates a share token and returns the public id
	// it was issued for.
	VerifyListToken(token string) (publicID string, err error)
}

type ShareServiceImpl struct {
	signKey []byte
	ttl     time.Duration
}

// NewShareService constructs ShareService with an HS256 signing key.
func NewShareService(signKey []byte, ttl time.Duration) *ShareServiceImpl {
	return &ShareServiceImpl{signKey: signKey, ttl: ttl}
}

// IssueListToken creates a signed HS256 token whose subject is the list's
// public id.
func (s *ShareServiceImpl) IssueListToken(publicID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   publicID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// VerifyListToken parses and validates a share token.
func (s *ShareServiceImpl) VerifyListToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidShareToken
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidShareToken
	}
	return claims.Subject, nil
}
