package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

func TestGenreUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		uc, _, _ := newUseCases(t)

		created, err := uc.Genre.Create(ctx, model.GenreInput{Name: "Action"})
		gt.NoError(t, err).Required()

		got, err := uc.Genre.Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.String(t, got.Name).Equal("Action")
	})

	t.Run("invalid input is a validation error with details", func(t *testing.T) {
		uc, _, _ := newUseCases(t)

		_, err := uc.Genre.Create(ctx, model.GenreInput{Name: "ab"})
		requireKind(t, err, apperr.KindValidation, `"name" length must be at least 3 characters long`)

		e, _ := apperr.As(err)
		details, ok := e.Details.([]model.FieldError)
		gt.Bool(t, ok).True()
		gt.Array(t, details).Length(1)
	})

	t.Run("missing genre is not found", func(t *testing.T) {
		uc, _, _ := newUseCases(t)

		_, err := uc.Genre.Get(ctx, model.NewID())
		requireKind(t, err, apperr.KindNotFound, "Genre not found")

		_, err = uc.Genre.Update(ctx, model.NewID(), model.GenreInput{Name: "Drama"})
		requireKind(t, err, apperr.KindNotFound, "Genre not found")

		_, err = uc.Genre.Delete(ctx, model.NewID())
		requireKind(t, err, apperr.KindNotFound, "Genre not found")
	})

	t.Run("list uses page skip and limit", func(t *testing.T) {
		uc, _, _ := newUseCases(t)
		for i := range 5 {
			_, err := uc.Genre.Create(ctx, model.GenreInput{Name: fmt.Sprintf("Genre %d", i)})
			gt.NoError(t, err).Required()
		}

		genres, total, err := uc.Genre.List(ctx, pagination.Page{Page: 2, Limit: 2, Skip: 2})
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(5)
		gt.Array(t, genres).Length(2)
		gt.String(t, genres[0].Name).Equal("Genre 2")
	})
}
