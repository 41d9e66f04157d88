package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(now time.Time) *TokenIssuer {
	issuer := NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)
	issuer.now = func() time.Time { return now }
	return issuer
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(now)

	token, err := issuer.GenerateAccess(7, "manager")
	require.NoError(t, err)

	claims, err := issuer.Validate(token, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	issuer := newTestIssuer(time.Now())

	refresh, err := issuer.GenerateRefresh(7, "customer")
	require.NoError(t, err)

	_, err = issuer.Validate(refresh, AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = issuer.Validate(refresh, RefreshToken)
	assert.NoError(t, err)
}

func TestAccessTokenExpires(t *testing.T) {
	issued := time.Now()
	token, err := newTestIssuer(issued).GenerateAccess(7, "customer")
	require.NoError(t, err)

	_, err = newTestIssuer(issued.Add(59*time.Minute)).Validate(token, AccessToken)
	assert.NoError(t, err)

	_, err = newTestIssuer(issued.Add(61*time.Minute)).Validate(token, AccessToken)
	assert.Error(t, err)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	other := NewTokenIssuer("another-secret", time.Hour, time.Hour)
	token, err := other.GenerateAccess(7, "customer")
	require.NoError(t, err)

	_, err = newTestIssuer(time.Now()).Validate(token, AccessToken)
	assert.Error(t, err)
}
