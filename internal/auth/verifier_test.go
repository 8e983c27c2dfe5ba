package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-ticketing/internal/clock"
)

func newTestVerifier(t *testing.T, now time.Time) (*Codec, *Verifier) {
	t.Helper()
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)
	return codec, NewVerifier(codec, clock.NewFixed(now))
}

func TestVerifierRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec, verifier := newTestVerifier(t, now)

	token := signedClaims(t, codec, "alice@example.com", []string{"USER"}, now, now.Add(time.Hour))

	principal, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", principal.Subject)
	require.Equal(t, []string{"USER"}, principal.Roles)
}

func TestVerifierRejectsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec, verifier := newTestVerifier(t, now)

	token := signedClaims(t, codec, "alice@example.com", nil, now.Add(-time.Hour), now.Add(-time.Second))

	_, err := verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifierRejectsNotYetValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec, verifier := newTestVerifier(t, now)

	token := signedClaims(t, codec, "alice@example.com", nil, now.Add(time.Hour), now.Add(2*time.Hour))

	_, err := verifier.Verify(token)
	require.ErrorIs(t, err, ErrNotYetValid)
}

func TestVerifierSignatureCheckPrecedesTimeCheck(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, verifier := newTestVerifier(t, now)

	other, err := NewCodec("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	// Expired AND signed by the wrong key: the signature failure wins.
	token := signedClaims(t, other, "alice@example.com", nil, now.Add(-2*time.Hour), now.Add(-time.Hour))

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifierAccessTokenLifecycle(t *testing.T) {
	// Issue at t0 with a 15 minute TTL; valid at t0+1m, expired at t0+16m.
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	issuer := NewIssuer(codec, 15*time.Minute, 7*24*time.Hour, 0, clock.NewFixed(t0))
	token, _, err := issuer.IssueAccessToken(Principal{Subject: "alice@example.com", Roles: []string{"USER"}})
	require.NoError(t, err)

	principal, err := NewVerifier(codec, clock.NewFixed(t0.Add(time.Minute))).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", principal.Subject)

	_, err = NewVerifier(codec, clock.NewFixed(t0.Add(16*time.Minute))).Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestIsValidSwallowsAllErrors(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec, verifier := newTestVerifier(t, now)

	require.False(t, verifier.IsValid(""))
	require.False(t, verifier.IsValid("garbage"))
	require.False(t, verifier.IsValid(signedClaims(t, codec, "alice@example.com", nil, now.Add(-time.Hour), now.Add(-time.Minute))))
	require.True(t, verifier.IsValid(signedClaims(t, codec, "alice@example.com", nil, now, now.Add(time.Hour))))
}

func TestPrincipalAuthorities(t *testing.T) {
	principal := Principal{Subject: "alice@example.com", Roles: []string{"USER", "ADMIN"}}
	require.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, principal.Authorities())
	require.True(t, principal.HasAuthority("ROLE_ADMIN"))
	require.False(t, principal.HasAuthority("ROLE_STAFF"))
}
