package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type movieRepository struct {
	*store[model.Movie]
}

func newMovieRepository() *movieRepository {
	return &movieRepository{
		store: newStore("movie",
			func(m *model.Movie) *model.ID { return &m.ID },
			func(a, b *model.Movie) bool { return a.Title < b.Title },
		),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	return r.create(ctx, movie)
}

func (r *movieRepository) Get(ctx context.Context, id model.ID) (*model.Movie, error) {
	return r.get(ctx, id)
}

func (r *movieRepository) List(ctx context.Context, offset, limit int) ([]*model.Movie, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *movieRepository) Update(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	return r.update(ctx, movie)
}

func (r *movieRepository) Delete(ctx context.Context, id model.ID) (*model.Movie, error) {
	return r.delete(ctx, id)
}

func (r *movieRepository) AdjustStock(ctx context.Context, id model.ID, delta int) (*model.Movie, error) {
	return r.modify(ctx, id, func(m *model.Movie) error {
		if m.NumberInStock+delta < 0 {
			return goerr.Wrap(interfaces.ErrOutOfStock, "movie not in stock",
				goerr.V(model.IDKey, id), goerr.V("in_stock", m.NumberInStock))
		}
		m.NumberInStock += delta
		return nil
	})
}
