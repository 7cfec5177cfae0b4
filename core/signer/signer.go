package signer

import "time"

// Signer wraps payload bytes in a tamper-evident, timestamped envelope and
// unwraps them again. Implementations must be safe for concurrent use after
// construction.
//
// Sign produces a cookie-safe token embedding the payload and its issue
// time. The payload itself must already be cookie-safe text (the codec
// base64-encodes before signing).
//
// Verify checks the token's signature and, when maxAge > 0, that the token
// was issued no more than maxAge ago, then returns the original payload.
type Signer interface {
	Sign(payload []byte) (string, error)
	Verify(token string, maxAge time.Duration) ([]byte, error)
}
