package sessioncodec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiesession/core/normalize"
	"github.com/dmitrymomot/cookiesession/core/session"
	"github.com/dmitrymomot/cookiesession/core/sessioncodec"
	"github.com/dmitrymomot/cookiesession/core/signer"
)

const testSecret = "test-secret-0123456789abcdefghijklmnopqrstuvwxyz"

func newTestCodec(t *testing.T, opts ...sessioncodec.Option) *sessioncodec.Codec {
	t.Helper()
	s, err := signer.NewHMAC([]string{testSecret})
	require.NoError(t, err)
	codec, err := sessioncodec.New(s, opts...)
	require.NoError(t, err)
	return codec
}

// stubSigner records the max age handed to Verify and echoes payloads back,
// so codec behavior can be tested without real crypto.
type stubSigner struct {
	verifyErr error
	payload   string
	gotMaxAge time.Duration
}

func (s *stubSigner) Sign(payload []byte) (string, error) {
	return "tok." + string(payload), nil
}

func (s *stubSigner) Verify(token string, maxAge time.Duration) ([]byte, error) {
	s.gotMaxAge = maxAge
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	if s.payload != "" {
		return []byte(s.payload), nil
	}
	return []byte(strings.TrimPrefix(token, "tok.")), nil
}

func TestNewRequiresSigner(t *testing.T) {
	t.Parallel()

	_, err := sessioncodec.New(nil)
	assert.ErrorIs(t, err, sessioncodec.ErrNoSigner)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	// JSON numbers decode as float64, so the round-trip fixture sticks to
	// the post-decode representation.
	m := session.Map{
		"user":  "anna",
		"count": float64(3),
		"ok":    true,
		"none":  nil,
		"list":  []any{"a", float64(1), false},
		"inner": map[string]any{"k": "v"},
	}

	token, err := codec.Encode(m)
	require.NoError(t, err)
	assert.NotContains(t, token, ";")
	assert.NotContains(t, token, " ")

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestEncodeNormalizesValues(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	id := uuid.MustParse("36621c53-55c3-11ef-b14b-c45ab1ddc9ad")

	token, err := codec.Encode(session.Map{"item_id": id})
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "36621c53-55c3-11ef-b14b-c45ab1ddc9ad", decoded.GetString("item_id"))
}

func TestEncodeNormalizesNestedKeysAndValues(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	a, b := uuid.New(), uuid.New()

	token, err := codec.Encode(session.Map{
		"data": []any{map[uuid.UUID]uuid.UUID{a: b}},
	})
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)

	list, ok := decoded["data"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, map[string]any{a.String(): b.String()}, list[0])
}

func TestEncodeFailsClosedOnOpaqueValue(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	type opaque struct{ hidden string } //nolint:unused

	_, err := codec.Encode(session.Map{"bad": opaque{}})
	assert.ErrorIs(t, err, normalize.ErrNotSerializable)
}

func TestCustomNormalizerReplacesChain(t *testing.T) {
	t.Parallel()

	var seen []any
	resolver := func(v any) (any, error) {
		seen = append(seen, v)
		if s, ok := v.(string); ok {
			return strings.ToUpper(s), nil
		}
		return v, nil
	}

	codec := newTestCodec(t, sessioncodec.WithNormalizer(resolver))

	token, err := codec.Encode(session.Map{"key": "value"})
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "VALUE", decoded.GetString("KEY"))

	// The resolver saw both the key and the value.
	assert.ElementsMatch(t, []any{"key", "value"}, seen)
}

func TestCustomNormalizerOwnsRecursion(t *testing.T) {
	t.Parallel()

	// The default chain would resolve a UUID via its String method; a custom
	// resolver that does not recurse leaves nested values untouched, so the
	// codec must not normalize behind its back.
	resolver := func(v any) (any, error) {
		if id, ok := v.(uuid.UUID); ok {
			return "uuid:" + id.String(), nil
		}
		return v, nil
	}

	codec := newTestCodec(t, sessioncodec.WithNormalizer(resolver))
	id := uuid.New()

	token, err := codec.Encode(session.Map{"id": id})
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "uuid:"+id.String(), decoded.GetString("id"))
}

func TestCustomNormalizerErrorAbortsEncode(t *testing.T) {
	t.Parallel()

	resolver := func(v any) (any, error) {
		return nil, assert.AnError
	}

	codec := newTestCodec(t, sessioncodec.WithNormalizer(resolver))

	_, err := codec.Encode(session.Map{"key": "value"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDecodePropagatesSignerErrors(t *testing.T) {
	t.Parallel()

	stub := &stubSigner{verifyErr: signer.ErrInvalidSignature}
	codec, err := sessioncodec.New(stub, sessioncodec.WithMaxAge(time.Hour))
	require.NoError(t, err)

	_, err = codec.Decode("whatever")
	assert.ErrorIs(t, err, signer.ErrInvalidSignature)
	assert.Equal(t, time.Hour, stub.gotMaxAge, "configured max age reaches the signer")
}

func TestDecodeMalformedPayload(t *testing.T) {
	t.Parallel()

	// Verified payloads that aren't base64 or don't hold JSON fold into the
	// same recovery path as a bad signature.
	for _, payload := range []string{"!!!not-base64!!!", "bm90LWpzb24="} {
		stub := &stubSigner{payload: payload}
		codec, err := sessioncodec.New(stub)
		require.NoError(t, err)

		_, err = codec.Decode("tok.anything")
		assert.ErrorIs(t, err, sessioncodec.ErrMalformedPayload, "payload %q", payload)
	}
}

func TestDecodeTamperedToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	token, err := codec.Encode(session.Map{"user": "anna"})
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		mutated[i] ^= 0x01
		_, err := codec.Decode(string(mutated))
		assert.Error(t, err, "byte %d", i)
	}
}

func TestEncodeEmptyAndNilMaps(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	token, err := codec.Encode(session.Map{})
	require.NoError(t, err)
	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Empty(t, decoded)

	token, err = codec.Encode(nil)
	require.NoError(t, err)
	decoded, err = codec.Decode(token)
	require.NoError(t, err)
	assert.Empty(t, decoded)

	// A nil map encodes to a JSON null payload; the decoded session must
	// still be mutable.
	require.NotNil(t, decoded)
	require.NotPanics(t, func() { decoded.Set("k", "v") })
	assert.Equal(t, "v", decoded.GetString("k"))
}
