package interfaces

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *model.Movie) (*model.Movie, error)
	Get(ctx context.Context, id model.ID) (*model.Movie, error)

	// List returns one page of movies sorted by title and the total count
	List(ctx context.Context, offset, limit int) ([]*model.Movie, int, error)

	Update(ctx context.Context, movie *model.Movie) (*model.Movie, error)
	Delete(ctx context.Context, id model.ID) (*model.Movie, error)

	// AdjustStock atomically adds delta to NumberInStock. It fails with
	// ErrOutOfStock when the result would be negative.
	AdjustStock(ctx context.Context, id model.ID, delta int) (*model.Movie, error)
}
