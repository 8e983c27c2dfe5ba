package auth

import (
	"errors"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"
)

const minSecretLen = 32

// Claims is the JWT payload shape shared by access and refresh tokens. The
// two kinds differ only in lifetime, not structure. Roles are frozen at
// issuance and are not re-derived from storage during verification.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies compact tokens with a single fixed HMAC scheme.
// It is stateless: a pure function of the secret and the claims.
type Codec struct {
	secret []byte
}

// NewCodec validates the signing secret and builds a codec. Callers must
// treat an error as fatal at startup.
func NewCodec(secret string) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("signing secret must be at least %d bytes, got %d", minSecretLen, len(secret))
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Sign serializes and MACs the claims into a compact token string.
func (c *Codec) Sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks structure and MAC only; the time window is the verifier's
// concern. Only HS256 is accepted: a token presenting any other algorithm
// fails as ErrInvalidSignature, never triggers negotiation.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidSignature), errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
