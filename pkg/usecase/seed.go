package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

// SeedResult counts the documents created by Seed.
type SeedResult struct {
	Genres    int
	Movies    int
	Customers int
	Users     int
}

// seedConcurrency bounds parallel writes during seeding.
const seedConcurrency = 8

// Seed validates fixtures and writes them. Genres are written first so that
// movies can embed them.
func (uc *UseCases) Seed(ctx context.Context, fixtures *model.Fixtures) (*SeedResult, error) {
	if err := validate(fixtures); err != nil {
		return nil, err
	}

	var (
		result SeedResult
		mu     sync.Mutex
		genres = make(map[string]*model.Genre, len(fixtures.Genres))
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(seedConcurrency)
	for _, g := range fixtures.Genres {
		eg.Go(func() error {
			created, err := uc.Genre.Create(egCtx, g)
			if err != nil {
				return goerr.Wrap(err, "failed to seed genre", goerr.V("name", g.Name))
			}
			mu.Lock()
			genres[g.Name] = created
			result.Genres++
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return &result, err
	}

	eg, egCtx = errgroup.WithContext(ctx)
	eg.SetLimit(seedConcurrency)
	for _, m := range fixtures.Movies {
		eg.Go(func() error {
			_, err := uc.Movie.Create(egCtx, model.MovieInput{
				Title:           m.Title,
				GenreID:         genres[m.Genre].ID,
				NumberInStock:   &m.NumberInStock,
				DailyRentalRate: &m.DailyRentalRate,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to seed movie", goerr.V("title", m.Title))
			}
			mu.Lock()
			result.Movies++
			mu.Unlock()
			return nil
		})
	}
	for _, c := range fixtures.Customers {
		eg.Go(func() error {
			if _, err := uc.Customer.Create(egCtx, c); err != nil {
				return goerr.Wrap(err, "failed to seed customer", goerr.V("name", c.Name))
			}
			mu.Lock()
			result.Customers++
			mu.Unlock()
			return nil
		})
	}
	for _, u := range fixtures.Users {
		eg.Go(func() error {
			if _, err := uc.User.create(egCtx, u.Name, u.Email, u.Password, u.IsAdmin); err != nil {
				return goerr.Wrap(err, "failed to seed user", goerr.V("email", u.Email))
			}
			mu.Lock()
			result.Users++
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return &result, err
	}

	uc.logger.Info("fixtures seeded",
		"genres", result.Genres,
		"movies", result.Movies,
		"customers", result.Customers,
		"users", result.Users,
	)
	return &result, nil
}
