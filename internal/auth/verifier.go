package auth

import (
	"github.com/spec-kit/event-ticketing/internal/clock"
)

// Verifier validates a presented token and extracts the identity it asserts.
// Checks run in a fixed order: structure, MAC, expiration, not-before.
type Verifier struct {
	codec *Codec
	clock clock.Clock
}

// NewVerifier constructs a verifier.
func NewVerifier(codec *Codec, clk clock.Clock) *Verifier {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Verifier{codec: codec, clock: clk}
}

// Verify returns the principal encoded in the token or one of the
// verification errors.
func (v *Verifier) Verify(tokenStr string) (Principal, error) {
	claims, err := v.codec.Verify(tokenStr)
	if err != nil {
		return Principal{}, err
	}
	if claims.ExpiresAt == nil || claims.Subject == "" {
		return Principal{}, ErrMalformed
	}

	now := v.clock.Now()
	if now.After(claims.ExpiresAt.Time) {
		return Principal{}, ErrExpired
	}
	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return Principal{}, ErrNotYetValid
	}

	return Principal{Subject: claims.Subject, Roles: claims.Roles}, nil
}

// IsValid is the pass/fail form used where no claims are needed. It runs on
// attacker-controlled input on every request, so it swallows every
// verification error rather than propagating it.
func (v *Verifier) IsValid(tokenStr string) bool {
	_, err := v.Verify(tokenStr)
	return err == nil
}
