package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/backend/errs"
)

func TestTokenRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenWrongSecretIsRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("different-secret", time.Hour)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestExpiredTokenIsRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsExpiredTokenError(err))
}

func TestGarbageTokenIsRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not-a-token")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}
