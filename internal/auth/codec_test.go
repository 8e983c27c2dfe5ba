package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signedClaims(t *testing.T, codec *Codec, subject string, roles []string, nbf, exp time.Time) string {
	t.Helper()
	token, err := codec.Sign(&Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(nbf),
			NotBefore: jwt.NewNumericDate(nbf),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	require.NoError(t, err)
	return token
}

func TestNewCodecRejectsShortSecret(t *testing.T) {
	_, err := NewCodec("too-short")
	require.Error(t, err)

	_, err = NewCodec(testSecret)
	require.NoError(t, err)
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	now := time.Now()
	token := signedClaims(t, codec, "alice@example.com", []string{"USER"}, now, now.Add(time.Hour))
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)
	require.Equal(t, []string{"USER"}, claims.Roles)
}

func TestCodecVerifyIgnoresTimeWindow(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	// Long expired, but structurally sound and correctly signed. The codec
	// only vouches for structure and MAC; time is the verifier's job.
	past := time.Now().Add(-48 * time.Hour)
	token := signedClaims(t, codec, "alice@example.com", nil, past, past.Add(time.Minute))

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)
}

func TestCodecRejectsTamperedSignature(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	now := time.Now()
	token := signedClaims(t, codec, "alice@example.com", nil, now, now.Add(time.Hour))

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	_, err = codec.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)
	other, err := NewCodec("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	now := time.Now()
	token := signedClaims(t, codec, "alice@example.com", nil, now, now.Add(time.Hour))

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCodecRejectsMalformedToken(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	for _, tokenStr := range []string{
		"",
		"not-a-token",
		"only.two",
		"a.b.c.d",
	} {
		_, err := codec.Verify(tokenStr)
		require.ErrorIs(t, err, ErrMalformed, "token %q", tokenStr)
	}
}

func TestCodecRejectsAlgorithmSubstitution(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	// Unsigned token claiming alg=none must fail signature verification,
	// never fall through to negotiation.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice@example.com"},
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(tokenStr)
	require.ErrorIs(t, err, ErrInvalidSignature)
}
