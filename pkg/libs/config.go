package libs

import (
	"time"

	"github.com/oarkflow/squealx"

	"github.com/tunisiajockeyclub/club/pkg/objects"
)

type Config struct {
	Secret               []byte
	SessionName          string
	SessionTimeout       time.Duration
	MaxLoginAttempts     int
	RateLimitRequests    int
	RateLimitWindow      time.Duration
	LoginRateRequests    int
	EnableSecurityEvents bool
	PasswordLegacyAlgo   string
	DB                   *squealx.DB
}

func LoadConfig() *Config {
	return &Config{
		Secret:               []byte(objects.Config.GetString("club.secret")),
		SessionName:          objects.Config.GetString("club.session_name", "tjc_session"),
		SessionTimeout:       objects.Config.GetDuration("club.session_timeout", "24h"),
		MaxLoginAttempts:     objects.Config.GetInt("club.max_login_attempts", 5),
		RateLimitRequests:    objects.Config.GetInt("club.rate_limit_requests", 100),
		RateLimitWindow:      objects.Config.GetDuration("club.rate_limit_window", "1m"),
		LoginRateRequests:    objects.Config.GetInt("club.login_rate_requests", 10),
		EnableSecurityEvents: objects.Config.GetBool("club.enable_security_events", true),
		PasswordLegacyAlgo:   objects.Config.GetString("club.password_legacy_algo"),
	}
}
