package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-ticketing/internal/clock"
)

func TestIssuerAccessTokenClaims(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer(codec, 15*time.Minute, 7*24*time.Hour, 0, clock.NewFixed(now))

	token, expiresAt, err := issuer.IssueAccessToken(Principal{
		Subject: "alice@example.com",
		Roles:   []string{"USER", "ADMIN"},
	})
	require.NoError(t, err)
	require.Equal(t, now.Add(15*time.Minute), expiresAt)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)
	require.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
	require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	require.Equal(t, now.Unix(), claims.NotBefore.Unix())
	require.Equal(t, now.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestIssuerRefreshTokenUsesRefreshTTL(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer(codec, 15*time.Minute, 7*24*time.Hour, 0, clock.NewFixed(now))

	token, expiresAt, err := issuer.IssueRefreshToken(Principal{Subject: "alice@example.com"})
	require.NoError(t, err)
	require.Equal(t, now.Add(7*24*time.Hour), expiresAt)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, now.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssuerBackdatesNotBeforeBySkewTolerance(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer(codec, 15*time.Minute, 7*24*time.Hour, 5*time.Minute, clock.NewFixed(now))

	token, _, err := issuer.IssueAccessToken(Principal{Subject: "alice@example.com"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, now.Add(-5*time.Minute).Unix(), claims.NotBefore.Unix())
	require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
}
