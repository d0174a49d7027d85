package http

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
)

// Quotas of the per-route limiters. The general limiter is configurable.
const (
	AuthLimit    = 5
	AuthWindow   = 15 * time.Minute
	CreateLimit  = 10
	CreateWindow = time.Minute

	msgAuthLimit   = "Too many login attempts, please try again after 15 minutes"
	msgCreateLimit = "Too many create requests, please slow down"
)

// RateLimitConfig controls the general per-IP limiter on /api.
type RateLimitConfig struct {
	Enabled bool
	Max     int
	Window  time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: true,
		Max:     100,
		Window:  15 * time.Minute,
	}
}

type limiters struct {
	general func(http.Handler) http.Handler
	auth    func(http.Handler) http.Handler
	create  func(http.Handler) http.Handler
}

func passthrough(next http.Handler) http.Handler { return next }

// newLimiters builds one limiter per quota. A limiter is shared by every
// route it guards, so create requests count against one budget per IP.
func (s *Server) newLimiters() limiters {
	if !s.rateLimit.Enabled || s.env.IsTest() {
		return limiters{general: passthrough, auth: passthrough, create: passthrough}
	}

	cfg := s.rateLimit
	if cfg.Max < 1 {
		cfg.Max = DefaultRateLimitConfig().Max
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultRateLimitConfig().Window
	}

	return limiters{
		general: s.limitByIP(cfg.Max, cfg.Window, ""),
		auth:    s.limitByIP(AuthLimit, AuthWindow, msgAuthLimit),
		create:  s.limitByIP(CreateLimit, CreateWindow, msgCreateLimit),
	}
}

func (s *Server) limitByIP(limit int, window time.Duration, msg string) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			s.responder.Respond(w, r, apperr.RateLimit(msg))
		}),
	)
}
