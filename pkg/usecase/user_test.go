package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

func TestUserUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("register hashes password and issues token", func(t *testing.T) {
		uc, repo, _ := newUseCases(t)

		user, token, err := uc.User.Register(ctx, model.UserInput{Name: "Jane Doe", Email: "Jane@Example.com", Password: "password1234"})
		gt.NoError(t, err).Required()
		gt.String(t, user.Email).Equal("jane@example.com")
		gt.Bool(t, user.IsAdmin).False()

		stored, err := repo.User().Get(ctx, user.ID)
		gt.NoError(t, err).Required()
		gt.String(t, stored.PasswordHash).NotEqual("password1234")

		verified, err := uc.Auth.Verify(ctx, token)
		gt.NoError(t, err).Required()
		gt.Value(t, verified.UserID).Equal(user.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		uc, _, _ := newUseCases(t)
		input := model.UserInput{Name: "Jane Doe", Email: "jane@example.com", Password: "password1234"}

		_, _, err := uc.User.Register(ctx, input)
		gt.NoError(t, err).Required()

		_, _, err = uc.User.Register(ctx, input)
		requireKind(t, err, apperr.KindConflict, "User already registered.")
	})

	t.Run("me", func(t *testing.T) {
		uc, _, _ := newUseCases(t)
		user, _, err := uc.User.Register(ctx, model.UserInput{Name: "Jane Doe", Email: "jane@example.com", Password: "password1234"})
		gt.NoError(t, err).Required()

		me, err := uc.User.Me(ctx, user.ID)
		gt.NoError(t, err).Required()
		gt.String(t, me.Name).Equal("Jane Doe")

		_, err = uc.User.Me(ctx, model.NewID())
		requireKind(t, err, apperr.KindNotFound, "User not found")
	})
}
