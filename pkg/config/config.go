package config

import (
	"github.com/tunisiajockeyclub/club/pkg/objects"
)

type Config struct{}

func (a *Config) Prefix() string {
	return "club"
}

func (a *Config) Load() {
	objects.Config.Add("app.name", "Tunisia Jockey Club")
	objects.Config.Add("app.version", "1.0.0")
	objects.Config.Add("app.env", "development")
	objects.Config.Add("app.https", false)
	objects.Config.Add(a.Prefix(), map[string]any{
		"secret":          objects.Config.Env("CLUB_SECRET", "kL2rT8wQzX5vB1nY7mC4dF9gH3jP6sA0"),
		"session_name":    objects.Config.Env("CLUB_SESSION_NAME", "tjc_session"),
		"session_timeout": objects.Config.Env("CLUB_SESSION_TIMEOUT", "24h"),

		"max_login_attempts": objects.Config.Env("CLUB_MAX_LOGIN_ATTEMPTS", 5),

		"rate_limit_requests": objects.Config.Env("CLUB_RATE_LIMIT_REQUESTS", 100),
		"rate_limit_window":   objects.Config.Env("CLUB_RATE_LIMIT_WINDOW", "1m"),
		"login_rate_requests": objects.Config.Env("CLUB_LOGIN_RATE_REQUESTS", 10),

		"enable_security_events": objects.Config.Env("CLUB_ENABLE_SECURITY_EVENTS", true),
	})
}
