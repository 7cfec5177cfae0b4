package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/cookiesession/core/session"
	"github.com/dmitrymomot/cookiesession/core/sessioncodec"
)

// sessionKey is used as a key for storing the session map in request context.
type sessionKey struct{}

const defaultCookieName = "session"

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Codec encodes and decodes the session cookie value (required)
	Codec *sessioncodec.Codec
	// CookieName is the session cookie name (default: "session")
	CookieName string
	// Path is the cookie path attribute (default: "/")
	Path string
	// Domain is the cookie domain attribute (default: empty)
	Domain string
	// MaxAge is the cookie Max-Age in seconds; included only when > 0
	MaxAge int
	// Secure restricts the cookie to HTTPS
	Secure bool
	// HttpOnly hides the cookie from client-side scripts
	HttpOnly bool
	// SameSite sets the SameSite attribute for CSRF protection
	SameSite http.SameSite
	// Logger for structured logging (default: slog with io.Discard)
	Logger *slog.Logger
	// ErrorHandler takes over the response when encoding the outbound
	// session fails (default: plain 500)
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// Session creates session middleware with secure defaults: cookie name
// "session", path "/", HttpOnly, SameSite=Lax.
//
// The middleware:
//   - Decodes the inbound session cookie (invalid, tampered, or expired
//     cookies silently become a fresh empty session)
//   - Stores the session map in request context
//   - Processes the request
//   - Emits the outbound Set-Cookie just before response headers flush:
//     a signed token when the session is non-empty, a clearing cookie when
//     a previously non-empty session was emptied, nothing otherwise
//
// Usage:
//
//	mux.Handle("/", middleware.Session(codec)(handler))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		sess, _ := middleware.GetSession(r.Context())
//		sess.Set("item_id", itemID)
//	}
func Session(codec *sessioncodec.Codec) func(http.Handler) http.Handler {
	return SessionWithConfig(SessionConfig{
		Codec:    codec,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionWithConfig creates session middleware with custom configuration.
//
// Decoding failures are always recoverable: a bad signature, an expired
// token, or malformed payload bytes all yield an empty session and are
// logged at debug level, never surfaced to the application. Encoding
// failures are always fatal for the response: the ErrorHandler takes over
// and none of the handler's buffered output is written after it, so a
// corrupt or partial cookie is never sent.
//
// Hijacked connections (for example WebSocket upgrades) pass through
// without cookie emission.
func SessionWithConfig(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Codec == nil {
		panic("session middleware: codec is required")
	}

	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			sess := session.New()
			wasEmpty := true
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				decoded, err := cfg.Codec.Decode(c.Value)
				if err != nil {
					cfg.Logger.DebugContext(r.Context(),
						"session middleware: discarding invalid session cookie", "error", err)
				} else {
					sess = decoded
					wasEmpty = false
				}
			}

			r = r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess))

			sw := &sessionWriter{
				ResponseWriter: w,
				emit: func() error {
					return setSessionCookie(cfg, w.Header(), sess, wasEmpty)
				},
				onError: func(err error) {
					cfg.Logger.ErrorContext(r.Context(),
						"session middleware: failed to encode session", "error", err)
					cfg.ErrorHandler(w, r, err)
				},
			}

			next.ServeHTTP(sw, r)

			// Handler returned without writing: the cookie header must still
			// land before the server's implicit status write.
			if !sw.written && !sw.failed && !sw.hijacked {
				if err := sw.emit(); err != nil {
					sw.failed = true
					sw.onError(err)
				}
			}
		})
	}
}

// setSessionCookie decides the outbound cookie mutation from the final
// session state, atomically at header-write time.
func setSessionCookie(cfg SessionConfig, h http.Header, sess session.Map, wasEmpty bool) error {
	switch {
	case len(sess) > 0:
		token, err := cfg.Codec.Encode(sess)
		if err != nil {
			return err
		}
		c := &http.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Path:     cfg.Path,
			Domain:   cfg.Domain,
			Secure:   cfg.Secure,
			HttpOnly: cfg.HttpOnly,
			SameSite: cfg.SameSite,
		}
		if cfg.MaxAge > 0 {
			c.MaxAge = cfg.MaxAge
		}
		header := c.String()
		if len(header) > maxCookieSize {
			return ErrCookieTooLarge{Name: cfg.CookieName, Size: len(header), Max: maxCookieSize}
		}
		h.Add("Set-Cookie", header)

	case !wasEmpty:
		// A previously established session was emptied during this request:
		// actively clear it on the client.
		c := &http.Cookie{
			Name:     cfg.CookieName,
			Value:    "null",
			Path:     cfg.Path,
			Domain:   cfg.Domain,
			Expires:  time.Unix(0, 0),
			Secure:   cfg.Secure,
			HttpOnly: cfg.HttpOnly,
			SameSite: cfg.SameSite,
		}
		h.Add("Set-Cookie", c.String())
	}

	return nil
}

// GetSession retrieves the session map from the request context.
// Returns the map and a boolean indicating whether it was found. The map
// has reference semantics: mutations are visible to the middleware when it
// encodes the outbound cookie.
func GetSession(ctx context.Context) (session.Map, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(sessionKey{}).(session.Map)
	return sess, ok
}

// MustGetSession retrieves the session map or panics if not found.
// Use this when session presence is guaranteed by middleware.
func MustGetSession(ctx context.Context) session.Map {
	sess, ok := GetSession(ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}
