package config

import (
	"time"

	"github.com/urfave/cli/v3"
	httpctrl "github.com/vidly-dev/vidly/pkg/controller/http"
)

// RateLimit holds CLI flags for the general API rate limiter
type RateLimit struct {
	enabled bool
	max     int
	window  int
}

// Flags returns CLI flags for rate limit configuration
func (x *RateLimit) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "rate-limit-enabled",
			Category:    "Rate limit",
			Usage:       "Enable per IP rate limiting on /api",
			Value:       true,
			Sources:     cli.EnvVars("VIDLY_RATE_LIMIT_ENABLED", "RATE_LIMIT_ENABLED"),
			Destination: &x.enabled,
		},
		&cli.IntFlag{
			Name:        "rate-limit-max",
			Category:    "Rate limit",
			Usage:       "Requests allowed per IP and window",
			Value:       100,
			Sources:     cli.EnvVars("VIDLY_RATE_LIMIT_MAX", "RATE_LIMIT_MAX"),
			Destination: &x.max,
		},
		&cli.IntFlag{
			Name:        "rate-limit-window",
			Category:    "Rate limit",
			Usage:       "Window length in minutes",
			Value:       15,
			Sources:     cli.EnvVars("VIDLY_RATE_LIMIT_WINDOW", "RATE_LIMIT_WINDOW"),
			Destination: &x.window,
		},
	}
}

// Config returns the limiter settings for the HTTP server
func (x *RateLimit) Config() httpctrl.RateLimitConfig {
	return httpctrl.RateLimitConfig{
		Enabled: x.enabled,
		Max:     x.max,
		Window:  time.Duration(x.window) * time.Minute,
	}
}
