package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/types"
	"github.com/vidly-dev/vidly/pkg/usecase"
	"github.com/vidly-dev/vidly/pkg/utils/correlation"
	"github.com/vidly-dev/vidly/pkg/utils/errutil"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
	"github.com/vidly-dev/vidly/pkg/utils/safe"
	"github.com/vidly-dev/vidly/pkg/utils/sanitize"
)

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	logger    *slog.Logger
	env       types.Env
	version   string
	startedAt time.Time
	now       func() time.Time

	pageConfig pagination.Config
	rateLimit  RateLimitConfig
	hub        *sentry.Hub

	responder *Responder
	guard     sanitize.Guard
	limits    limiters
}

type Options func(*Server)

func WithLogger(logger *slog.Logger) Options {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithEnv selects the runtime environment. Production hides error internals
// and sanitizer findings; test disables rate limiting.
func WithEnv(env types.Env) Options {
	return func(s *Server) {
		s.env = env
	}
}

func WithPagination(cfg pagination.Config) Options {
	return func(s *Server) {
		s.pageConfig = cfg
	}
}

func WithRateLimit(cfg RateLimitConfig) Options {
	return func(s *Server) {
		s.rateLimit = cfg
	}
}

// WithSentry reports unexpected errors to hub
func WithSentry(hub *sentry.Hub) Options {
	return func(s *Server) {
		s.hub = hub
	}
}

func WithVersion(version string) Options {
	return func(s *Server) {
		s.version = version
	}
}

func WithClock(now func() time.Time) Options {
	return func(s *Server) {
		s.now = now
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()
	s := &Server{
		router:     r,
		uc:         uc,
		logger:     logging.Default(),
		env:        types.EnvDevelopment,
		version:    "dev",
		now:        time.Now,
		pageConfig: pagination.DefaultConfig(),
		rateLimit:  DefaultRateLimitConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.env.Validate(); err != nil {
		return nil, err
	}

	s.startedAt = s.now()
	s.responder = NewResponder(s.logger, s.env.IsProduction(), s.hub)
	s.guard = sanitize.Guard{Production: s.env.IsProduction()}
	s.limits = s.newLimiters()

	// Correlation runs before anything that logs or responds.
	r.Use(s.injectLogger)
	r.Use(correlation.Middleware)
	r.Use(accessLogger)
	r.Use(s.recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.responder.Respond(w, r, apperr.NotFound("Route"))
	})
	// Unsupported methods on a known path share the unknown route envelope.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.responder.Respond(w, r, apperr.NotFound("Route"))
	})

	r.Get("/health", s.chain(s.health))
	r.Get("/ready", s.chain(s.ready))

	r.Route("/api", func(r chi.Router) {
		r.Use(s.limits.general)

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", s.chain(s.listGenres, s.paginate))
			r.Get("/{id}", s.chain(s.getGenre, validateID))
			r.With(s.limits.create).Post("/", s.chain(s.createGenre, s.authenticate, s.sanitizeBody))
			r.Put("/{id}", s.chain(s.updateGenre, s.authenticate, validateID, s.sanitizeUpdate))
			r.Delete("/{id}", s.chain(s.deleteGenre, s.authenticate, s.requireAdmin, validateID))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.chain(s.listCustomers, s.authenticate, s.paginate))
			r.Get("/{id}", s.chain(s.getCustomer, s.authenticate, validateID))
			r.With(s.limits.create).Post("/", s.chain(s.createCustomer, s.authenticate, s.sanitizeBody))
			r.Put("/{id}", s.chain(s.updateCustomer, s.authenticate, validateID, s.sanitizeUpdate))
			r.Delete("/{id}", s.chain(s.deleteCustomer, s.authenticate, validateID))
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", s.chain(s.listMovies, s.paginate))
			r.Get("/{id}", s.chain(s.getMovie, validateID))
			r.With(s.limits.create).Post("/", s.chain(s.createMovie, s.authenticate, s.sanitizeBody))
			r.Put("/{id}", s.chain(s.updateMovie, s.authenticate, validateID, s.sanitizeUpdate))
			r.Delete("/{id}", s.chain(s.deleteMovie, s.authenticate, s.requireAdmin, validateID))
		})

		r.Route("/rentals", func(r chi.Router) {
			r.Get("/", s.chain(s.listRentals, s.authenticate, s.paginate))
			r.Get("/{id}", s.chain(s.getRental, s.authenticate, validateID))
			r.With(s.limits.create).Post("/", s.chain(s.createRental, s.authenticate, s.sanitizeBody))
		})

		r.Post("/returns", s.chain(s.createReturn, s.authenticate, s.sanitizeBody))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.chain(s.registerUser, s.sanitizeBody))
			r.Get("/me", s.chain(s.getMe, s.authenticate))
		})

		r.With(s.limits.auth).Post("/auth", s.chain(s.login, s.sanitizeBody))
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Route is one registered method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// Routes lists every registered route in registration order.
func (s *Server) Routes() ([]Route, error) {
	var routes []Route
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk routes")
	}
	return routes, nil
}

// injectLogger makes the server logger the request scoped logger.
func (s *Server) injectLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(logging.With(r.Context(), s.logger)))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			correlation.Logger(r.Context(), nil).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// recoverer turns a panic into an unexpected error response.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			s.responder.Respond(w, r, goerr.Wrap(err, "panic in handler"))
		}()
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to encode response"), "failed to write JSON response")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	safe.Write(ctx, w, body)
}
