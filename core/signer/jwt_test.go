package signer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T, secret string) *JWT {
	t.Helper()
	s, err := NewJWT(secret)
	require.NoError(t, err)
	return s
}

func TestNewJWTValidation(t *testing.T) {
	t.Parallel()

	_, err := NewJWT("")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = NewJWT("short")
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestJWTRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestJWT(t, testSecret)

	token, err := s.Sign([]byte("payload-bytes"))
	require.NoError(t, err)

	payload, err := s.Verify(token, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload-bytes"), payload)
}

func TestJWTTamperDetection(t *testing.T) {
	t.Parallel()

	s := newTestJWT(t, testSecret)

	token, err := s.Sign([]byte("payload"))
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		mutated[i] ^= 0x01
		_, err := s.Verify(string(mutated), 0)
		assert.Error(t, err, "byte %d", i)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := newTestJWT(t, testSecret).Sign([]byte("payload"))
	require.NoError(t, err)

	other := newTestJWT(t, "another-secret-0123456789abcdefghijklmnop")
	_, err = other.Verify(token, 0)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTExpiry(t *testing.T) {
	t.Parallel()

	s := newTestJWT(t, testSecret)
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Sign([]byte("payload"))
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err = s.Verify(token, time.Hour)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = s.Verify(token, 3*time.Hour)
	assert.NoError(t, err)

	_, err = s.Verify(token, 0)
	assert.NoError(t, err)
}
