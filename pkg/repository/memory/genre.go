package memory

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type genreRepository struct {
	*store[model.Genre]
}

func newGenreRepository() *genreRepository {
	return &genreRepository{
		store: newStore("genre",
			func(g *model.Genre) *model.ID { return &g.ID },
			func(a, b *model.Genre) bool { return a.Name < b.Name },
		),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *model.Genre) (*model.Genre, error) {
	return r.create(ctx, genre)
}

func (r *genreRepository) Get(ctx context.Context, id model.ID) (*model.Genre, error) {
	return r.get(ctx, id)
}

func (r *genreRepository) List(ctx context.Context, offset, limit int) ([]*model.Genre, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *genreRepository) Update(ctx context.Context, genre *model.Genre) (*model.Genre, error) {
	return r.update(ctx, genre)
}

func (r *genreRepository) Delete(ctx context.Context, id model.ID) (*model.Genre, error) {
	return r.delete(ctx, id)
}
