package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/errutil"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
	"golang.org/x/sync/errgroup"
)

type RentalUseCase struct {
	repo   interfaces.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewRentalUseCase(repo interfaces.Repository, logger *slog.Logger, now func() time.Time) *RentalUseCase {
	if logger == nil {
		logger = logging.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &RentalUseCase{repo: repo, logger: logger, now: now}
}

func (uc *RentalUseCase) List(ctx context.Context, page pagination.Page) ([]*model.Rental, int, error) {
	rentals, total, err := uc.repo.Rental().List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, translate(err, ResourceRental, "failed to list rentals")
	}
	return rentals, total, nil
}

func (uc *RentalUseCase) Get(ctx context.Context, id model.ID) (*model.Rental, error) {
	rental, err := uc.repo.Rental().Get(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceRental, "failed to get rental")
	}
	return rental, nil
}

// Create lends a movie to a customer and takes one copy out of stock.
func (uc *RentalUseCase) Create(ctx context.Context, input model.RentalInput) (*model.Rental, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	var (
		customer *model.Customer
		movie    *model.Movie
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		c, err := uc.repo.Customer().Get(egCtx, input.CustomerID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return apperr.Validation(MsgInvalidCustomer, nil)
			}
			return goerr.Wrap(err, "failed to get customer", goerr.V(CustomerIDKey, input.CustomerID))
		}
		customer = c
		return nil
	})
	eg.Go(func() error {
		m, err := uc.repo.Movie().Get(egCtx, input.MovieID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return apperr.Validation(MsgInvalidMovie, nil)
			}
			return goerr.Wrap(err, "failed to get movie", goerr.V(MovieIDKey, input.MovieID))
		}
		movie = m
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if movie.NumberInStock <= 0 {
		return nil, apperr.Validation(MsgNotInStock, nil)
	}

	if _, err := uc.repo.Movie().AdjustStock(ctx, movie.ID, -1); err != nil {
		if errors.Is(err, interfaces.ErrOutOfStock) {
			return nil, apperr.Validation(MsgNotInStock, nil)
		}
		return nil, translate(err, ResourceMovie, "failed to take movie out of stock")
	}

	rental, err := uc.repo.Rental().Create(ctx, &model.Rental{
		Customer: customer.Embed(),
		Movie:    movie.Embed(),
		DateOut:  uc.now().UTC(),
	})
	if err != nil {
		if _, restoreErr := uc.repo.Movie().AdjustStock(ctx, movie.ID, 1); restoreErr != nil {
			_ = errutil.Handle(ctx, restoreErr, "failed to restore stock after rental failure")
		}
		return nil, goerr.Wrap(err, "failed to create rental",
			goerr.V(CustomerIDKey, customer.ID), goerr.V(MovieIDKey, movie.ID))
	}

	uc.logger.Info("movie rented",
		"rental_id", rental.ID,
		"customer_id", customer.ID,
		"movie_id", movie.ID,
	)
	return rental, nil
}

// Return closes the latest rental of the pair, charges the fee and puts the
// copy back in stock.
func (uc *RentalUseCase) Return(ctx context.Context, input model.RentalInput) (*model.Rental, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	rental, err := uc.repo.Rental().Lookup(ctx, input.CustomerID, input.MovieID)
	if err != nil {
		return nil, translate(err, ResourceRental, "failed to look up rental")
	}
	if rental.IsReturned() {
		return nil, apperr.Validation(MsgReturnProcessed, nil)
	}

	rental.Return(uc.now())
	updated, err := uc.repo.Rental().MarkReturned(ctx, rental)
	if err != nil {
		if errors.Is(err, interfaces.ErrAlreadyReturned) {
			return nil, apperr.Validation(MsgReturnProcessed, nil)
		}
		return nil, translate(err, ResourceRental, "failed to close rental")
	}

	// The rental stays closed even when restocking fails; the failure is
	// logged for manual correction.
	if _, err := uc.repo.Movie().AdjustStock(ctx, rental.Movie.ID, 1); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			uc.logger.Warn("returned movie no longer exists",
				"rental_id", rental.ID,
				"movie_id", rental.Movie.ID,
			)
		} else {
			_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to put movie back in stock",
				goerr.V(RentalIDKey, rental.ID), goerr.V(MovieIDKey, rental.Movie.ID)),
				"failed to restock returned movie")
		}
	}

	uc.logger.Info("movie returned",
		"rental_id", updated.ID,
		"movie_id", updated.Movie.ID,
	)
	return updated, nil
}
