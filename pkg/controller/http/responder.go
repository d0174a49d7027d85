package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/utils/correlation"
	"github.com/vidly-dev/vidly/pkg/utils/sanitize"
)

// MsgUnexpected replaces the message of unexpected errors in production.
const MsgUnexpected = "An unexpected error occurred"

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	Details       any    `json:"details,omitempty"`
	CorrelationID string `json:"correlationId"`
	Stack         string `json:"stack,omitempty"`
}

// Responder renders every failed request as the JSON error envelope and
// writes exactly one log entry for it.
type Responder struct {
	logger     *slog.Logger
	production bool
	hub        *sentry.Hub
}

// NewResponder creates a Responder. The request scoped logger takes
// precedence over logger, and a nil hub disables error reporting.
func NewResponder(logger *slog.Logger, production bool, hub *sentry.Hub) *Responder {
	return &Responder{logger: logger, production: production, hub: hub}
}

func (x *Responder) loggerFor(r *http.Request) *slog.Logger {
	return correlation.Logger(r.Context(), x.logger)
}

// Respond writes err. Operational errors keep their status, code and message;
// anything else becomes a 500.
func (x *Responder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	id := correlation.FromOr(r.Context(), correlation.Unknown)
	logger := x.loggerFor(r)

	if e, ok := apperr.As(err); ok {
		attrs := []any{
			"error_code", e.ErrorCode(),
			"message", e.Message,
			"status_code", e.StatusCode(),
		}
		if e.Details != nil {
			attrs = append(attrs, "details", e.Details)
		}
		if e.Resource != "" {
			attrs = append(attrs, "resource", e.Resource)
		}
		logger.Warn("operational error", attrs...)
		writeJSON(r.Context(), w, e.StatusCode(), errorBody{Error: errorPayload{
			Code:          e.ErrorCode(),
			Message:       e.Message,
			Details:       e.Details,
			CorrelationID: id,
		}})
		return
	}

	stack := fmt.Sprintf("%+v", err)
	logger.Error("unexpected error",
		"error", err.Error(),
		"stack", stack,
		"url", r.URL.String(),
		"method", r.Method,
	)
	x.report(r, id, err)

	payload := errorPayload{
		Code:          apperr.CodeInternal,
		Message:       err.Error(),
		CorrelationID: id,
		Stack:         stack,
	}
	if x.production {
		payload.Message = MsgUnexpected
		payload.Stack = ""
	}
	writeJSON(r.Context(), w, http.StatusInternalServerError, errorBody{Error: payload})
}

// RespondRejection writes a sanitization rejection with its own body shape.
func (x *Responder) RespondRejection(w http.ResponseWriter, r *http.Request, rej *sanitize.Rejection) {
	x.loggerFor(r).Warn("request rejected by sanitizer",
		"message", rej.Message,
		"paths", rej.Paths,
		"operators", rej.Operators,
		"url", r.URL.String(),
		"method", r.Method,
	)
	writeJSON(r.Context(), w, rej.StatusCode(), rej.Body())
}

func (x *Responder) report(r *http.Request, id string, err error) {
	if x.hub == nil {
		return
	}
	hub := x.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("correlation_id", id)
		scope.SetRequest(r)
	})
	hub.CaptureException(err)
}
