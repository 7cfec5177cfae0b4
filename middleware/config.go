package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/cookiesession/core/sessioncodec"
	"github.com/dmitrymomot/cookiesession/core/signer"
)

// Config provides environment-based configuration for the session middleware.
type Config struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	Secrets    string        `env:"SESSION_SECRETS,required"`
	Signer     string        `env:"SESSION_SIGNER" envDefault:"hmac"`
	Path       string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	Domain     string        `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	MaxAge     time.Duration `env:"SESSION_MAX_AGE" envDefault:"336h"` // 14 days
	Secure     bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	HttpOnly   bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite   http.SameSite `env:"SESSION_COOKIE_SAME_SITE" envDefault:"2"` // SameSiteLaxMode
}

// parseSecrets splits comma-separated secrets for key rotation support.
// Empty strings are filtered out.
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))

	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			secrets = append(secrets, s)
		}
	}

	return secrets
}

// NewFromConfig builds the session middleware from configuration: it
// constructs the signer named by cfg.Signer ("hmac" or "jwt"), wraps it in a
// codec with the configured max age plus any extra codec options, and wires
// the cookie attributes. The same max age bounds both token verification and
// the cookie's Max-Age attribute so the client and the envelope expire
// together.
func NewFromConfig(cfg Config, opts ...sessioncodec.Option) (func(http.Handler) http.Handler, error) {
	var (
		s   signer.Signer
		err error
	)
	switch strings.ToLower(cfg.Signer) {
	case "", "hmac":
		s, err = signer.NewHMAC(cfg.parseSecrets())
	case "jwt":
		secrets := cfg.parseSecrets()
		if len(secrets) == 0 {
			return nil, signer.ErrNoSecret
		}
		s, err = signer.NewJWT(secrets[0])
	default:
		return nil, fmt.Errorf("unsupported session signer %q", cfg.Signer)
	}
	if err != nil {
		return nil, err
	}

	codecOpts := append([]sessioncodec.Option{sessioncodec.WithMaxAge(cfg.MaxAge)}, opts...)
	codec, err := sessioncodec.New(s, codecOpts...)
	if err != nil {
		return nil, err
	}

	return SessionWithConfig(SessionConfig{
		Codec:      codec,
		CookieName: cfg.CookieName,
		Path:       cfg.Path,
		Domain:     cfg.Domain,
		MaxAge:     int(cfg.MaxAge.Seconds()),
		Secure:     cfg.Secure,
		HttpOnly:   cfg.HttpOnly,
		SameSite:   cfg.SameSite,
	}), nil
}
