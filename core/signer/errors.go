package signer

import "errors"

// Error variables define the failure modes of the signing envelope. The
// session codec downgrades all of them to "no valid session" on decode;
// none should ever surface to application handlers.
var (
	// ErrNoSecret indicates no non-empty secret was provided.
	ErrNoSecret = errors.New("no secret provided for signer")

	// ErrSecretTooShort indicates a secret below the minimum length for
	// HMAC-SHA256 keys.
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")

	// ErrInvalidFormat indicates a token that does not parse as an envelope.
	ErrInvalidFormat = errors.New("invalid token format")

	// ErrInvalidSignature indicates signature verification failed,
	// suggesting tampering or a rotated-out secret.
	ErrInvalidSignature = errors.New("token signature verification failed")

	// ErrTokenExpired indicates the token was issued longer ago than the
	// allowed max age.
	ErrTokenExpired = errors.New("token has expired")
)
