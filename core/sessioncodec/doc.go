// Package sessioncodec implements the session cookie wire format:
//
//	sign(base64url(json(normalize(session.Map))))
//
// Encode fails closed — any value that cannot be normalized aborts the
// whole encode so a corrupt cookie is never issued. Decode fails open at
// the call site: every failure (bad signature, expired token, malformed
// base64 or JSON) comes back as an error the middleware converts into a
// fresh empty session.
//
//	s, _ := signer.NewHMAC(secrets)
//	codec, err := sessioncodec.New(s,
//		sessioncodec.WithMaxAge(14*24*time.Hour),
//	)
//
// A custom normalize.Resolver can be injected per codec instance with
// WithNormalizer; it replaces the default capability chain for every key
// and value in the session.
package sessioncodec
