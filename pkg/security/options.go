package security

import "time"

// RateLimitRule bounds requests per identifier inside a fixed window.
type RateLimitRule struct {
	Window      time.Duration
	MaxRequests int
}

// Options configures the pipeline for one route. Immutable once attached.
type Options struct {
	RequireAuth   bool
	RequireRole   []string
	RateLimit     *RateLimitRule
	ValidateCSRF  bool
	SanitizeInput bool
}

// LoaderOptions is the read-path preset: gate and throttle, leave the body alone.
func LoaderOptions(opts ...Options) Options {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	o.ValidateCSRF = false
	o.SanitizeInput = false
	return o
}

// ActionOptions is the write-path preset: CSRF and sanitization are forced on.
func ActionOptions(opts ...Options) Options {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	o.ValidateCSRF = true
	o.SanitizeInput = true
	return o
}
