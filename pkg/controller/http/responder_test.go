package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/vidly-dev/vidly/pkg/controller/http"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/utils/correlation"
	"github.com/vidly-dev/vidly/pkg/utils/sanitize"
)

func respond(t *testing.T, production bool, ctx context.Context, err error) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/things?x=1", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	httpctrl.NewResponder(nil, production, nil).Respond(rec, req, err)
	return rec
}

func TestResponder_Operational(t *testing.T) {
	ctx := correlation.With(context.Background(), "req-1")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Validation("bad", []string{"name"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperr.NotFound("Genre"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized(""), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperr.Forbidden(""), http.StatusForbidden, "FORBIDDEN"},
		{"conflict", apperr.Conflict("taken"), http.StatusConflict, "CONFLICT"},
		{"rate limit", apperr.RateLimit(""), http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
	}

	for _, tt := range tests {
		for _, production := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/production=%v", tt.name, production), func(t *testing.T) {
				rec := respond(t, production, ctx, tt.err)
				gt.Value(t, rec.Code).Equal(tt.status)

				body := decode[errorEnvelope](t, rec)
				gt.String(t, body.Error.Code).Equal(tt.code)
				gt.String(t, body.Error.CorrelationID).Equal("req-1")
				gt.Value(t, body.Error.Stack).Nil()
			})
		}
	}
}

func TestResponder_Details(t *testing.T) {
	rec := respond(t, true, context.Background(), apperr.Validation("bad", []string{"name"}))
	body := decode[errorEnvelope](t, rec)
	gt.String(t, string(body.Error.Details)).Equal(`["name"]`)

	rec = respond(t, false, context.Background(), apperr.NotFound("Genre"))
	body = decode[errorEnvelope](t, rec)
	gt.Value(t, len(body.Error.Details)).Equal(0)
}

func TestResponder_UnknownCorrelation(t *testing.T) {
	rec := respond(t, false, context.Background(), apperr.Conflict("taken"))
	gt.String(t, decode[errorEnvelope](t, rec).Error.CorrelationID).Equal("unknown")
}

func TestResponder_Unexpected(t *testing.T) {
	err := errors.New("nil map write")

	rec := respond(t, false, context.Background(), err)
	gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
	body := decode[errorEnvelope](t, rec)
	gt.String(t, body.Error.Code).Equal("INTERNAL_SERVER_ERROR")
	gt.String(t, body.Error.Message).Equal("nil map write")
	gt.Value(t, body.Error.Stack == nil).Equal(false)

	rec = respond(t, true, context.Background(), err)
	body = decode[errorEnvelope](t, rec)
	gt.String(t, body.Error.Message).Equal("An unexpected error occurred")
	gt.Value(t, body.Error.Stack).Nil()

	rec = respond(t, true, context.Background(), apperr.Internal("db down"))
	gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
	gt.String(t, decode[errorEnvelope](t, rec).Error.Code).Equal("INTERNAL_SERVER_ERROR")
}

func TestResponder_Rejection(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	rej := &sanitize.Rejection{Message: "La petición contiene propiedades prohibidas", Paths: []string{"a.__proto__"}}

	httpctrl.NewResponder(nil, false, nil).RespondRejection(rec, req, rej)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	body := decode[rejectionBody](t, rec)
	gt.String(t, body.Error).Equal("Solicitud inválida")
	gt.Value(t, body.Details).Equal([]string{"a.__proto__"})
}

type logEntry struct {
	raw    string
	fields map[string]any
}

func logEntries(t *testing.T, buf *bytes.Buffer) []logEntry {
	t.Helper()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var fields map[string]any
		gt.NoError(t, json.Unmarshal([]byte(line), &fields)).Required()
		entries = append(entries, logEntry{raw: line, fields: fields})
	}
	return entries
}

func (x logEntry) requireKeys(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		_, ok := x.fields[key]
		if !ok {
			t.Errorf("log entry has no %q: %s", key, x.raw)
		}
	}
}

func (x logEntry) requireNoKeys(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if _, ok := x.fields[key]; ok {
			t.Errorf("log entry has unexpected %q: %s", key, x.raw)
		}
	}
}

func requireOneEntry(t *testing.T, entries []logEntry) {
	t.Helper()
	if len(entries) != 1 {
		t.Fatalf("want exactly one log entry, got %d: %v", len(entries), entries)
	}
}

func respondLogged(t *testing.T, production bool, err error) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := correlation.With(context.Background(), "req-7")
	req := httptest.NewRequest(http.MethodPost, "/api/genres?x=1", nil).WithContext(ctx)
	httpctrl.NewResponder(logger, production, nil).Respond(httptest.NewRecorder(), req, err)
	return logEntries(t, &buf)
}

func TestResponder_LogsOperationalOnce(t *testing.T) {
	entries := respondLogged(t, true, apperr.Validation("bad", []string{"name"}))
	requireOneEntry(t, entries)

	entry := entries[0]
	gt.Value(t, entry.fields["level"]).Equal("WARN")
	entry.requireKeys(t, "correlation_id", "error_code", "message", "status_code", "details")
	entry.requireNoKeys(t, "resource", "stack")
	gt.Value(t, entry.fields["correlation_id"]).Equal("req-7")
	gt.Value(t, entry.fields["error_code"]).Equal("VALIDATION_ERROR")
	gt.Value(t, entry.fields["status_code"]).Equal(float64(http.StatusBadRequest))
	gt.Number(t, strings.Count(entry.raw, `"correlation_id"`)).Equal(1)

	entries = respondLogged(t, true, apperr.NotFound("Genre"))
	requireOneEntry(t, entries)
	entries[0].requireKeys(t, "resource")
	entries[0].requireNoKeys(t, "details")
	gt.Value(t, entries[0].fields["resource"]).Equal("Genre")
}

func TestResponder_LogsUnexpectedOnce(t *testing.T) {
	for _, production := range []bool{false, true} {
		t.Run(fmt.Sprintf("production=%v", production), func(t *testing.T) {
			entries := respondLogged(t, production, errors.New("nil map write"))
			requireOneEntry(t, entries)

			entry := entries[0]
			gt.Value(t, entry.fields["level"]).Equal("ERROR")
			entry.requireKeys(t, "correlation_id", "error", "stack", "url", "method")
			gt.Value(t, entry.fields["url"]).Equal("/api/genres?x=1")
			gt.Value(t, entry.fields["method"]).Equal(http.MethodPost)
			gt.Number(t, strings.Count(entry.raw, `"correlation_id"`)).Equal(1)
		})
	}
}
