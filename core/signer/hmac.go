package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// minSecretLength is the minimum secret length for HMAC-SHA256 keys.
const minSecretLength = 32

// sep separates the payload, timestamp, and signature segments. Timestamp
// and signature are base64url-encoded, so the separator can be located from
// the right even if the payload contains dots.
const sep = "."

// HMAC signs payloads with HMAC-SHA256 in a timestamped envelope:
//
//	payload "." base64url(unix-timestamp) "." base64url(signature)
//
// Multiple secrets support key rotation: Sign always uses the first secret,
// Verify accepts any of them.
type HMAC struct {
	secrets []string
	now     func() time.Time
}

// NewHMAC creates an HMAC signer. Empty secrets are filtered out; every
// remaining secret must be at least 32 characters.
func NewHMAC(secrets []string) (*HMAC, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i := 0; i < len(secrets); i++ {
		if len(secrets[i]) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secrets[i]), minSecretLength)
		}
	}

	return &HMAC{secrets: secrets, now: time.Now}, nil
}

// Sign wraps payload with the current timestamp and a signature over both.
func (s *HMAC) Sign(payload []byte) (string, error) {
	ts := base64.RawURLEncoding.EncodeToString(strconv.AppendInt(nil, s.now().Unix(), 10))
	signed := string(payload) + sep + ts
	return signed + sep + s.compute(s.secrets[0], signed), nil
}

// Verify checks the signature against every configured secret and, when
// maxAge > 0, rejects tokens issued more than maxAge ago. Tokens with a
// future timestamp are accepted; age clamps at zero under clock skew.
func (s *HMAC) Verify(token string, maxAge time.Duration) ([]byte, error) {
	i := strings.LastIndex(token, sep)
	if i < 0 {
		return nil, ErrInvalidFormat
	}
	signed, signature := token[:i], token[i+1:]

	valid := slices.ContainsFunc(s.secrets, func(secret string) bool {
		expected := s.compute(secret, signed)
		return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
	})
	if !valid {
		return nil, ErrInvalidSignature
	}

	j := strings.LastIndex(signed, sep)
	if j < 0 {
		return nil, ErrInvalidFormat
	}
	payload, encodedTS := signed[:j], signed[j+1:]

	raw, err := base64.RawURLEncoding.DecodeString(encodedTS)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	issued, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if maxAge > 0 && s.now().Sub(time.Unix(issued, 0)) > maxAge {
		return nil, ErrTokenExpired
	}

	return []byte(payload), nil
}

// compute returns the base64url-encoded HMAC-SHA256 of data under secret.
func (s *HMAC) compute(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
