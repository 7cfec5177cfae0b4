// Package signer provides the tamper-evident envelope around serialized
// session payloads: a Signer interface plus two implementations, an
// HMAC-SHA256 timestamped signer (the default, with multi-secret rotation)
// and an HS256 JWT signer.
//
// The session codec depends only on the interface, so it can be tested with
// a fake and the signing scheme can be swapped without touching the codec:
//
//	s, err := signer.NewHMAC([]string{os.Getenv("SESSION_SECRET")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, _ := s.Sign([]byte("payload"))
//	payload, err := s.Verify(token, 24*time.Hour)
//	switch {
//	case errors.Is(err, signer.ErrTokenExpired):
//		// issued too long ago
//	case errors.Is(err, signer.ErrInvalidSignature):
//		// tampered or signed with an unknown secret
//	}
package signer
