package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/repository/memory"
	"github.com/vidly-dev/vidly/pkg/usecase"
	"golang.org/x/crypto/bcrypt"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newUseCases(t *testing.T) (*usecase.UseCases, *memory.Memory, *clock) {
	t.Helper()

	repo := memory.New()
	clk := &clock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	auth, err := usecase.NewAuthUseCase(repo, testKey, usecase.WithAuthClock(clk.Now))
	gt.NoError(t, err).Required()

	uc, err := usecase.New(repo,
		usecase.WithAuth(auth),
		usecase.WithClock(clk.Now),
		usecase.WithBcryptCost(bcrypt.MinCost),
	)
	gt.NoError(t, err).Required()
	return uc, repo, clk
}

func requireKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	e, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected operational error, got %v", err)
	}
	gt.Value(t, e.Kind).Equal(kind)
	if msg != "" {
		gt.String(t, e.Message).Equal(msg)
	}
}

func ptr[T any](v T) *T { return &v }
