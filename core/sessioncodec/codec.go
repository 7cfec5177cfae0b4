package sessioncodec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/cookiesession/core/normalize"
	"github.com/dmitrymomot/cookiesession/core/session"
	"github.com/dmitrymomot/cookiesession/core/signer"
)

// Codec converts between a session.Map and its signed cookie token:
// normalize -> JSON -> base64url -> sign on encode, and the reverse on
// decode. A Codec is immutable after construction and safe for concurrent
// use.
type Codec struct {
	signer     signer.Signer
	maxAge     time.Duration
	normalizer normalize.Resolver
}

// Option configures a Codec.
type Option func(*Codec)

// WithMaxAge sets how old a token may be before Decode rejects it.
// Zero (the default) disables the age check.
func WithMaxAge(d time.Duration) Option {
	return func(c *Codec) {
		if d > 0 {
			c.maxAge = d
		}
	}
}

// WithNormalizer replaces the default normalization chain wholesale: the
// resolver is applied to every session key and value, and it is responsible
// for its own recursion into nested lists and maps.
func WithNormalizer(r normalize.Resolver) Option {
	return func(c *Codec) {
		c.normalizer = r
	}
}

// New creates a codec over the given signer.
func New(s signer.Signer, opts ...Option) (*Codec, error) {
	if s == nil {
		return nil, ErrNoSigner
	}

	c := &Codec{signer: s}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Encode normalizes every key and value of m, serializes the result to
// JSON, base64-encodes it, and signs it into a cookie-safe token. Any
// normalization failure aborts the encode: a partial or corrupt token is
// never produced.
func (c *Codec) Encode(m session.Map) (string, error) {
	normalized, err := c.normalizeMap(m)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	payload := base64.URLEncoding.EncodeToString(raw)
	return c.signer.Sign([]byte(payload))
}

// Decode verifies the token (signature and age), then reverses the base64
// and JSON layers into a session map. All failures are reported to the
// caller; the middleware downgrades them to an empty session.
func (c *Codec) Decode(token string) (session.Map, error) {
	payload, err := c.signer.Verify(token, c.maxAge)
	if err != nil {
		return nil, err
	}

	raw, err := base64.URLEncoding.DecodeString(string(payload))
	if err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	// A JSON null payload unmarshals into a nil map; callers must always
	// receive a mutable one.
	if m == nil {
		m = map[string]any{}
	}

	return session.Map(m), nil
}

// normalizeMap reduces m to a JSON-representable map. With a custom
// normalizer configured, it is applied to each top-level key and value in
// place of the default chain; keys must still resolve to something that can
// name a JSON object member.
func (c *Codec) normalizeMap(m session.Map) (any, error) {
	if c.normalizer == nil {
		return normalize.Value(map[string]any(m))
	}

	out := make(map[string]any, len(m))
	for key, value := range m {
		resolvedKey, err := c.normalizer(key)
		if err != nil {
			return nil, err
		}
		k, err := normalize.Key(resolvedKey)
		if err != nil {
			return nil, err
		}
		v, err := c.normalizer(value)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
