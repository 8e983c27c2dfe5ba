package auth

import "errors"

// Verification failures, ordered by the check that produces them. The
// gateway collapses all of these to an anonymous principal; the login and
// refresh boundaries surface them with detail.
var (
	// ErrMalformed means the token could not be parsed into its
	// three-segment structure.
	ErrMalformed = errors.New("token malformed")

	// ErrInvalidSignature means the MAC did not verify under the process
	// signing key, or the token asked for a different algorithm.
	ErrInvalidSignature = errors.New("token signature invalid")

	// ErrExpired means the expiration claim is in the past.
	ErrExpired = errors.New("token expired")

	// ErrNotYetValid means the not-before claim is in the future.
	ErrNotYetValid = errors.New("token not yet valid")
)
