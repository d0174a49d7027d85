package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type rentalRepository struct {
	*collection[model.Rental]
}

func (r *rentalRepository) Create(ctx context.Context, rental *model.Rental) (*model.Rental, error) {
	if rental.DateOut.IsZero() {
		copied := *rental
		copied.DateOut = time.Now().UTC()
		rental = &copied
	}
	return r.create(ctx, rental)
}

func (r *rentalRepository) Get(ctx context.Context, id model.ID) (*model.Rental, error) {
	return r.get(ctx, id)
}

func (r *rentalRepository) List(ctx context.Context, offset, limit int) ([]*model.Rental, int, error) {
	return r.list(ctx, offset, limit)
}

// Lookup needs the composite index (customer.id, movie.id, date_out desc)
// created by the migrate command.
func (r *rentalRepository) Lookup(ctx context.Context, customerID, movieID model.ID) (*model.Rental, error) {
	q := r.ref().
		Where("customer.id", "==", customerID.String()).
		Where("movie.id", "==", movieID.String()).
		OrderBy("date_out", firestore.Desc).
		Limit(1)

	rentals, err := r.all(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "rental not found",
			goerr.V("customer_id", customerID), goerr.V("movie_id", movieID))
	}
	return rentals[0], nil
}

// MarkReturned checks and closes the rental in one transaction.
func (r *rentalRepository) MarkReturned(ctx context.Context, rental *model.Rental) (*model.Rental, error) {
	return r.modify(ctx, rental.ID, func(cur *model.Rental) error {
		if cur.IsReturned() {
			return goerr.Wrap(interfaces.ErrAlreadyReturned, "rental already returned", goerr.V(model.IDKey, rental.ID))
		}
		cur.DateReturned = rental.DateReturned
		cur.RentalFee = rental.RentalFee
		return nil
	})
}
