package correlation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/utils/correlation"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	h := correlation.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := correlation.From(r.Context())
		gt.Bool(t, ok).True()
		seen = id
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddleware_GeneratesUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, seen := serve(t, req)

	header := rec.Header().Get(correlation.ResponseHeader)
	gt.String(t, header).Equal(seen)

	parsed, err := uuid.Parse(header)
	gt.NoError(t, err).Required()
	gt.Value(t, parsed.Version()).Equal(uuid.Version(4))
}

func TestMiddleware_EchoesClientValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-Id", "abc-123")
	rec, seen := serve(t, req)

	gt.String(t, seen).Equal("abc-123")
	gt.String(t, rec.Header().Get(correlation.ResponseHeader)).Equal("abc-123")
}

func TestMiddleware_EmptyHeaderIsReplaced(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(correlation.RequestHeader, "")
	rec, _ := serve(t, req)

	_, err := uuid.Parse(rec.Header().Get(correlation.ResponseHeader))
	gt.NoError(t, err)
}

func TestMiddleware_DistinctPerRequest(t *testing.T) {
	rec1, _ := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))
	rec2, _ := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))

	gt.String(t, rec1.Header().Get(correlation.ResponseHeader)).
		NotEqual(rec2.Header().Get(correlation.ResponseHeader))
}

func TestFromOr(t *testing.T) {
	gt.String(t, correlation.FromOr(context.Background(), correlation.Unknown)).Equal("unknown")

	ctx := correlation.With(context.Background(), "req-1")
	gt.String(t, correlation.FromOr(ctx, correlation.Unknown)).Equal("req-1")
}
