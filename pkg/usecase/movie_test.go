package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

func TestMovieUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("create embeds genre", func(t *testing.T) {
		uc, _, _ := newUseCases(t)
		genre, err := uc.Genre.Create(ctx, model.GenreInput{Name: "Action"})
		gt.NoError(t, err).Required()

		movie, err := uc.Movie.Create(ctx, model.MovieInput{
			Title:           "Terminator",
			GenreID:         genre.ID,
			NumberInStock:   ptr(3.0),
			DailyRentalRate: ptr(2.0),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, movie.Genre).Equal(model.EmbeddedGenre{ID: genre.ID, Name: "Action"})
		gt.Value(t, movie.NumberInStock).Equal(3)
	})

	t.Run("unknown genre is invalid", func(t *testing.T) {
		uc, _, _ := newUseCases(t)

		_, err := uc.Movie.Create(ctx, model.MovieInput{
			Title:           "Terminator",
			GenreID:         model.NewID(),
			NumberInStock:   ptr(3.0),
			DailyRentalRate: ptr(2.0),
		})
		requireKind(t, err, apperr.KindValidation, "Invalid genre.")
	})

	t.Run("update missing movie", func(t *testing.T) {
		uc, _, _ := newUseCases(t)
		genre, err := uc.Genre.Create(ctx, model.GenreInput{Name: "Action"})
		gt.NoError(t, err).Required()

		_, err = uc.Movie.Update(ctx, model.NewID(), model.MovieInput{
			Title:           "Terminator 2",
			GenreID:         genre.ID,
			NumberInStock:   ptr(1.0),
			DailyRentalRate: ptr(2.0),
		})
		requireKind(t, err, apperr.KindNotFound, "Movie not found")
	})
}
