package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()

	fixtures := &model.Fixtures{
		Genres: []model.GenreInput{{Name: "Action"}, {Name: "Comedy"}},
		Movies: []model.MovieFixture{
			{Title: "Terminator", Genre: "Action", NumberInStock: 5, DailyRentalRate: 2},
			{Title: "Airplane!", Genre: "Comedy", NumberInStock: 3, DailyRentalRate: 1.5},
		},
		Customers: []model.CustomerInput{{Name: "Customer1", Phone: "1234567890", IsGold: true}},
		Users:     []model.UserFixture{{Name: "Admin User", Email: "admin@example.com", Password: "password1234", IsAdmin: true}},
	}

	t.Run("writes every fixture", func(t *testing.T) {
		uc, repo, _ := newUseCases(t)

		result, err := uc.Seed(ctx, fixtures)
		gt.NoError(t, err).Required()
		gt.Value(t, result.Genres).Equal(2)
		gt.Value(t, result.Movies).Equal(2)
		gt.Value(t, result.Customers).Equal(1)
		gt.Value(t, result.Users).Equal(1)

		movies, _, err := repo.Movie().List(ctx, 0, 10)
		gt.NoError(t, err).Required()
		gt.String(t, movies[0].Genre.Name).Equal("Comedy")

		admin, err := repo.User().GetByEmail(ctx, "admin@example.com")
		gt.NoError(t, err).Required()
		gt.Bool(t, admin.IsAdmin).True()

		_, err = uc.Auth.Login(ctx, model.Credentials{Email: "admin@example.com", Password: "password1234"})
		gt.NoError(t, err)
	})

	t.Run("rejects unknown genre before writing", func(t *testing.T) {
		uc, repo, _ := newUseCases(t)

		bad := &model.Fixtures{
			Genres: []model.GenreInput{{Name: "Action"}},
			Movies: []model.MovieFixture{{Title: "Alien 3", Genre: "Horror", NumberInStock: 1, DailyRentalRate: 1}},
		}
		_, err := uc.Seed(ctx, bad)
		requireKind(t, err, apperr.KindValidation, `movies[0]: unknown genre "Horror"`)

		_, total, err := repo.Genre().List(ctx, 0, 10)
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(0)
	})
}
