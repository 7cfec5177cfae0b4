// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads a .env file on first use and parses
// environment variables into struct fields via the caarlos0/env library.
//
//	type SessionConfig struct {
//		CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
//		Secrets    string        `env:"SESSION_SECRETS,required"`
//		MaxAge     time.Duration `env:"SESSION_MAX_AGE" envDefault:"336h"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful at startup)
//	config.MustLoad(&cfg)
//
// Each type is cached independently, so repeated loads of the same type are
// cheap and always agree.
package config
