package signer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT signs payloads as HS256 JSON Web Tokens carrying the payload in a
// private claim plus the issue time in iat. It is interchangeable with HMAC
// behind the Signer interface; use it when the cookie value must also be
// consumable by JWT-aware infrastructure.
type JWT struct {
	secret []byte
	now    func() time.Time
}

// payloadClaims carries the envelope payload as a base64url claim.
type payloadClaims struct {
	Payload string `json:"dat"`
	jwt.RegisteredClaims
}

// NewJWT creates a JWT signer with the given secret (min 32 characters).
func NewJWT(secret string) (*JWT, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: secret has %d chars, need at least %d",
			ErrSecretTooShort, len(secret), minSecretLength)
	}
	return &JWT{secret: []byte(secret), now: time.Now}, nil
}

// Sign wraps payload in an HS256 token with an iat claim.
func (s *JWT) Sign(payload []byte) (string, error) {
	claims := payloadClaims{
		Payload: base64.RawURLEncoding.EncodeToString(payload),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates the token signature and, when maxAge > 0, that the iat
// claim is no older than maxAge.
func (s *JWT) Verify(token string, maxAge time.Duration) ([]byte, error) {
	var claims payloadClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidSignature
	}
	if !parsed.Valid {
		return nil, ErrInvalidSignature
	}

	if maxAge > 0 {
		if claims.IssuedAt == nil {
			return nil, ErrInvalidFormat
		}
		if s.now().Sub(claims.IssuedAt.Time) > maxAge {
			return nil, ErrTokenExpired
		}
	}

	raw, err := base64.RawURLEncoding.DecodeString(claims.Payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return raw, nil
}
