package sessioncodec

import "errors"

var (
	// ErrNoSigner indicates the codec was constructed without a signer.
	ErrNoSigner = errors.New("no signer provided for session codec")

	// ErrMalformedPayload indicates a verified token whose payload is not
	// valid base64-wrapped JSON. Decoders treat it like a bad signature:
	// the session starts fresh.
	ErrMalformedPayload = errors.New("malformed session payload")
)
