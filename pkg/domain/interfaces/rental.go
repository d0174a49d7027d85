package interfaces

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type RentalRepository interface {
	Create(ctx context.Context, rental *model.Rental) (*model.Rental, error)
	Get(ctx context.Context, id model.ID) (*model.Rental, error)

	// List returns one page of rentals, most recent DateOut first
	List(ctx context.Context, offset, limit int) ([]*model.Rental, int, error)

	// Lookup returns the most recent rental of movieID by customerID
	Lookup(ctx context.Context, customerID, movieID model.ID) (*model.Rental, error)

	// MarkReturned stores DateReturned and RentalFee of rental only while the
	// stored rental is still open. It fails with ErrAlreadyReturned otherwise.
	MarkReturned(ctx context.Context, rental *model.Rental) (*model.Rental, error)
}
