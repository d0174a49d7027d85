package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type rentalRepository struct {
	*store[model.Rental]
}

func copyRental(r *model.Rental) *model.Rental {
	c := *r
	if r.DateReturned != nil {
		t := *r.DateReturned
		c.DateReturned = &t
	}
	if r.RentalFee != nil {
		fee := *r.RentalFee
		c.RentalFee = &fee
	}
	return &c
}

func newRentalRepository() *rentalRepository {
	s := newStore("rental",
		func(r *model.Rental) *model.ID { return &r.ID },
		func(a, b *model.Rental) bool { return a.DateOut.After(b.DateOut) },
	)
	s.clone = copyRental
	return &rentalRepository{store: s}
}

func (r *rentalRepository) Create(ctx context.Context, rental *model.Rental) (*model.Rental, error) {
	if rental.DateOut.IsZero() {
		rental = copyRental(rental)
		rental.DateOut = time.Now().UTC()
	}
	return r.create(ctx, rental)
}

func (r *rentalRepository) Get(ctx context.Context, id model.ID) (*model.Rental, error) {
	return r.get(ctx, id)
}

func (r *rentalRepository) List(ctx context.Context, offset, limit int) ([]*model.Rental, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *rentalRepository) Lookup(ctx context.Context, customerID, movieID model.ID) (*model.Rental, error) {
	found := r.find(func(x *model.Rental) bool {
		return x.Customer.ID == customerID && x.Movie.ID == movieID
	})

	var latest *model.Rental
	for _, x := range found {
		if latest == nil || x.DateOut.After(latest.DateOut) {
			latest = x
		}
	}
	if latest == nil {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "rental not found",
			goerr.V("customer_id", customerID), goerr.V("movie_id", movieID))
	}
	return latest, nil
}

func (r *rentalRepository) MarkReturned(ctx context.Context, rental *model.Rental) (*model.Rental, error) {
	closed := copyRental(rental)
	return r.modify(ctx, rental.ID, func(cur *model.Rental) error {
		if cur.IsReturned() {
			return goerr.Wrap(interfaces.ErrAlreadyReturned, "rental already returned", goerr.V(model.IDKey, rental.ID))
		}
		cur.DateReturned = closed.DateReturned
		cur.RentalFee = closed.RentalFee
		return nil
	})
}
