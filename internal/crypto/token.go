package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
)

// TokenLength is the length of generated bearer tokens and public ids.
const TokenLength = 64

// NewToken returns a cryptographically random URL-safe string of
// TokenLength characters. 48 random bytes encode to exactly 64 base64url
// characters without padding.
func NewToken() (string, error) {
	b := make([]byte, 48)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken returns the hex-encoded SHA-512 digest of a token. Tokens are
// random and high-entropy, so a fast hash is sufficient here; the slow
// bcrypt hash is reserved for passwords.
func HashToken(token string) string {
	sum := sha512.Sum512([]byte(token))
	return hex.EncodeToString(sum[:])
}
