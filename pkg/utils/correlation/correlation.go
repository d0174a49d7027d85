// Package correlation assigns every inbound request an identifier that ties
// together its log entries and its response.
package correlation

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
)

const (
	// RequestHeader is read from the client. Lookup is case-insensitive.
	RequestHeader = "x-correlation-id"
	// ResponseHeader is set on every response.
	ResponseHeader = "X-Correlation-ID"
	// Unknown is reported when a context carries no identifier.
	Unknown = "unknown"
)

type ctxKey struct{}

// loggerKey marks a context whose logger already carries the identifier.
type loggerKey struct{}

// With returns a context carrying id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the identifier stored in ctx.
func From(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// FromOr returns the identifier stored in ctx or fallback.
func FromOr(ctx context.Context, fallback string) string {
	if id, ok := From(ctx); ok {
		return id
	}
	return fallback
}

// Resolve picks the client supplied identifier when present, otherwise a new
// random UUID. The client value is used verbatim and is not assumed unique.
func Resolve(r *http.Request) string {
	if id := r.Header.Get(RequestHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// Middleware attaches the correlation identifier to the request context and
// echoes it in the response header before the rest of the chain runs. The
// request scoped logger stored in the context carries the identifier too.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := Resolve(r)
		w.Header().Set(ResponseHeader, id)

		ctx := With(r.Context(), id)
		ctx = logging.With(ctx, logging.From(r.Context()).With("correlation_id", id))
		ctx = context.WithValue(ctx, loggerKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger returns a logger that carries the identifier exactly once. Inside
// Middleware that is the context logger. Elsewhere the context logger, then
// base, then the default logger is tagged here.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if tagged, _ := ctx.Value(loggerKey{}).(bool); tagged {
		return logging.From(ctx)
	}
	if logger, ok := logging.FromContext(ctx); ok {
		base = logger
	}
	if base == nil {
		base = logging.Default()
	}
	return base.With("correlation_id", FromOr(ctx, Unknown))
}
