package middleware

import "fmt"

// maxCookieSize is the maximum size for a serialized cookie header (4KB).
// Browsers truncate or drop anything larger, which would silently corrupt
// the session, so oversize is treated as an encode failure.
const maxCookieSize = 4096

// ErrCookieTooLarge indicates the encoded session exceeds the maximum
// cookie size.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

// Error implements the error interface.
func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("session cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
