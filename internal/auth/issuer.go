package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/event-ticketing/internal/clock"
)

// Issuer builds access and refresh tokens for an authenticated principal.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	skew       time.Duration
	clock      clock.Clock
}

// NewIssuer constructs an issuer. skew backdates the not-before claim to
// tolerate clock drift between hosts; zero disables backdating.
func NewIssuer(codec *Codec, accessTTL, refreshTTL, skew time.Duration, clk clock.Clock) *Issuer {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Issuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		skew:       skew,
		clock:      clk,
	}
}

// IssueAccessToken signs a short-lived token for the principal.
func (i *Issuer) IssueAccessToken(principal Principal) (string, time.Time, error) {
	return i.issue(principal, i.accessTTL)
}

// IssueRefreshToken signs a long-lived token for the principal.
func (i *Issuer) IssueRefreshToken(principal Principal) (string, time.Time, error) {
	return i.issue(principal, i.refreshTTL)
}

func (i *Issuer) issue(principal Principal, ttl time.Duration) (string, time.Time, error) {
	now := i.clock.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Roles: principal.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-i.skew)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tokenStr, err := i.codec.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenStr, expiresAt, nil
}
