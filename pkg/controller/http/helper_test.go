package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/vidly-dev/vidly/pkg/controller/http"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/domain/types"
	"github.com/vidly-dev/vidly/pkg/repository/memory"
	"github.com/vidly-dev/vidly/pkg/usecase"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	server *httpctrl.Server
	uc     *usecase.UseCases
	repo   interfaces.Repository

	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T, opts ...httpctrl.Options) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, memory.New(), opts...)
}

func newTestEnvWithRepo(t *testing.T, repo interfaces.Repository, opts ...httpctrl.Options) *testEnv {
	t.Helper()

	uc, err := usecase.New(repo, usecase.WithBcryptCost(bcrypt.MinCost))
	gt.NoError(t, err).Required()

	opts = append([]httpctrl.Options{httpctrl.WithEnv(types.EnvTest)}, opts...)
	server, err := httpctrl.New(uc, opts...)
	gt.NoError(t, err).Required()

	env := &testEnv{server: server, uc: uc, repo: repo}
	env.adminToken = env.token(t, "Admin Person", "admin@example.com", true)
	env.userToken = env.token(t, "Plain Person", "user@example.com", false)
	return env
}

func (x *testEnv) token(t *testing.T, name, email string, admin bool) string {
	t.Helper()
	user, err := x.repo.User().Create(context.Background(), &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "unused",
		IsAdmin:      admin,
	})
	gt.NoError(t, err).Required()

	token, err := x.uc.Auth.Issue(user)
	gt.NoError(t, err).Required()
	return token
}

func (x *testEnv) do(t *testing.T, method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(httpctrl.AuthHeader, token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	x.server.ServeHTTP(rec, req)
	return rec
}

func (x *testEnv) createGenre(t *testing.T, name string) *model.Genre {
	t.Helper()
	genre, err := x.repo.Genre().Create(context.Background(), &model.Genre{Name: name})
	gt.NoError(t, err).Required()
	return genre
}

type errorEnvelope struct {
	Error struct {
		Code          string          `json:"code"`
		Message       string          `json:"message"`
		Details       json.RawMessage `json:"details"`
		CorrelationID string          `json:"correlationId"`
		Stack         *string         `json:"stack"`
	} `json:"error"`
}

type rejectionBody struct {
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Details   []string `json:"details"`
	Operators []string `json:"operators"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v)).Required()
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, msg string) errorEnvelope {
	t.Helper()
	gt.Value(t, rec.Code).Equal(status)
	body := decode[errorEnvelope](t, rec)
	gt.String(t, body.Error.Code).Equal(code)
	if msg != "" {
		gt.String(t, body.Error.Message).Equal(msg)
	}
	gt.String(t, body.Error.CorrelationID).Equal(rec.Header().Get("X-Correlation-ID"))
	return body
}

// brokenRepository fails genre reads and pings with err, and panics on
// genre lookups when panicOnGet is set.
type brokenRepository struct {
	interfaces.Repository
	err        error
	panicOnGet bool
}

func (x *brokenRepository) Genre() interfaces.GenreRepository {
	return &brokenGenres{GenreRepository: x.Repository.Genre(), repo: x}
}

func (x *brokenRepository) Ping(context.Context) error { return x.err }

type brokenGenres struct {
	interfaces.GenreRepository
	repo *brokenRepository
}

func (x *brokenGenres) List(context.Context, int, int) ([]*model.Genre, int, error) {
	return nil, 0, x.repo.err
}

func (x *brokenGenres) Get(ctx context.Context, id model.ID) (*model.Genre, error) {
	if x.repo.panicOnGet {
		panic("genre store exploded")
	}
	return x.GenreRepository.Get(ctx, id)
}

var _ http.Handler = (*httpctrl.Server)(nil)
