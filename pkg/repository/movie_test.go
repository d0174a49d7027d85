package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

func runMovieRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newMovie := func(t *testing.T, repo interfaces.Repository, stock int) *model.Movie {
		t.Helper()
		movie, err := repo.Movie().Create(context.Background(), &model.Movie{
			Title:           "Terminator",
			Genre:           model.EmbeddedGenre{ID: model.NewID(), Name: "Action"},
			NumberInStock:   stock,
			DailyRentalRate: 2,
		})
		gt.NoError(t, err).Required()
		return movie
	}

	t.Run("embedded genre survives round trip", func(t *testing.T) {
		repo := newRepo(t)
		movie := newMovie(t, repo, 3)

		got, err := repo.Movie().Get(context.Background(), movie.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Genre).Equal(movie.Genre)
		gt.Value(t, got.DailyRentalRate).Equal(2.0)
	})

	t.Run("AdjustStock decrements and increments", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		movie := newMovie(t, repo, 1)

		out, err := repo.Movie().AdjustStock(ctx, movie.ID, -1)
		gt.NoError(t, err).Required()
		gt.Value(t, out.NumberInStock).Equal(0)

		_, err = repo.Movie().AdjustStock(ctx, movie.ID, -1)
		gt.Error(t, err).Is(interfaces.ErrOutOfStock)

		back, err := repo.Movie().AdjustStock(ctx, movie.ID, 1)
		gt.NoError(t, err).Required()
		gt.Value(t, back.NumberInStock).Equal(1)
	})

	t.Run("AdjustStock missing movie", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Movie().AdjustStock(context.Background(), model.NewID(), -1)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("AdjustStock never goes negative under contention", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		movie := newMovie(t, repo, 5)

		var (
			wg sync.WaitGroup
			mu sync.Mutex
			ok int
		)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.Movie().AdjustStock(ctx, movie.ID, -1); err == nil {
					mu.Lock()
					ok++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		gt.Value(t, ok).Equal(5)
		got, err := repo.Movie().Get(ctx, movie.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.NumberInStock).Equal(0)
	})
}

func TestMovieRepository(t *testing.T) {
	runAllBackends(t, runMovieRepositoryTest)
}
