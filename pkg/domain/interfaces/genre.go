package interfaces

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type GenreRepository interface {
	// Create stores a new genre. An empty ID is replaced by a generated one.
	Create(ctx context.Context, genre *model.Genre) (*model.Genre, error)

	// Get retrieves a genre by ID
	Get(ctx context.Context, id model.ID) (*model.Genre, error)

	// List returns one page of genres sorted by name and the total count
	List(ctx context.Context, offset, limit int) ([]*model.Genre, int, error)

	// Update replaces an existing genre
	Update(ctx context.Context, genre *model.Genre) (*model.Genre, error)

	// Delete removes a genre and returns the removed document
	Delete(ctx context.Context, id model.ID) (*model.Genre, error)
}
