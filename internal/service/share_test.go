package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareToken_RoundTrip(t *testing.T) {
	svc := NewShareService([]byte("signing-key"), time.Hour)

	token, expiresAt, err := svc.IssueListToken("pub-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	publicID, err := svc.VerifyListToken(token)
	require.NoError(t, err)
	assert.Equal(t, "pub-1", publicID)
}

func TestShareToken_WrongKey(t *testing.T) {
	issuer := NewShareService([]byte("signing-key"), time.Hour)
	verifier := NewShareService([]byte("other-key"), time.Hour)

	token, _, err := issuer.IssueListToken("pub-1")
	require.NoError(t, err)

	_, err = verifier.VerifyListToken(token)
	assert.ErrorIs(t, err, ErrInvalidShareToken)
}

func TestShareToken_Expired(t *testing.T) {
	svc := NewShareService([]byte("signing-key"), -time.Minute)

	token, _, err := svc.IssueListToken("pub-1")
	require.NoError(t, err)

	_, err = svc.VerifyListToken(token)
	assert.ErrorIs(t, err, ErrInvalidShareToken)
}

func TestShareToken_Garbage(t *testing.T) {
	svc := NewShareService([]byte("signing-key"), time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyListToken(tok)
		assert.ErrorIs(t, err, ErrInvalidShareToken)
	}
}
