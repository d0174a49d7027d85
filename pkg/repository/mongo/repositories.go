package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type genreRepository struct {
	*collection[model.Genre]
}

func (r *genreRepository) Create(ctx context.Context, genre *model.Genre) (*model.Genre, error) {
	created := *genre
	return r.insert(ctx, &created, &created.ID)
}

func (r *genreRepository) Get(ctx context.Context, id model.ID) (*model.Genre, error) {
	return r.get(ctx, id)
}

func (r *genreRepository) List(ctx context.Context, offset, limit int) ([]*model.Genre, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *genreRepository) Update(ctx context.Context, genre *model.Genre) (*model.Genre, error) {
	return r.replace(ctx, genre.ID, genre)
}

func (r *genreRepository) Delete(ctx context.Context, id model.ID) (*model.Genre, error) {
	return r.remove(ctx, id)
}

type customerRepository struct {
	*collection[model.Customer]
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	created := *customer
	return r.insert(ctx, &created, &created.ID)
}

func (r *customerRepository) Get(ctx context.Context, id model.ID) (*model.Customer, error) {
	return r.get(ctx, id)
}

func (r *customerRepository) List(ctx context.Context, offset, limit int) ([]*model.Customer, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	return r.replace(ctx, customer.ID, customer)
}

func (r *customerRepository) Delete(ctx context.Context, id model.ID) (*model.Customer, error) {
	return r.remove(ctx, id)
}

type movieRepository struct {
	*collection[model.Movie]
}

func (r *movieRepository) Create(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	created := *movie
	return r.insert(ctx, &created, &created.ID)
}

func (r *movieRepository) Get(ctx context.Context, id model.ID) (*model.Movie, error) {
	return r.get(ctx, id)
}

func (r *movieRepository) List(ctx context.Context, offset, limit int) ([]*model.Movie, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *movieRepository) Update(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	return r.replace(ctx, movie.ID, movie)
}

func (r *movieRepository) Delete(ctx context.Context, id model.ID) (*model.Movie, error) {
	return r.remove(ctx, id)
}

// AdjustStock applies $inc guarded by the current stock in one round trip.
func (r *movieRepository) AdjustStock(ctx context.Context, id model.ID, delta int) (*model.Movie, error) {
	filter := bson.D{{Key: "_id", Value: id}}
	if delta < 0 {
		filter = append(filter, bson.E{Key: "numberInStock", Value: bson.D{{Key: "$gte", Value: -delta}}})
	}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "numberInStock", Value: delta}}}}

	var out model.Movie
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, goerr.Wrap(err, "failed to adjust stock", goerr.V(model.IDKey, id))
	}

	if _, err := r.get(ctx, id); err != nil {
		return nil, err
	}
	return nil, goerr.Wrap(interfaces.ErrOutOfStock, "movie not in stock", goerr.V(model.IDKey, id))
}

type rentalRepository struct {
	*collection[model.Rental]
}

func (r *rentalRepository) Create(ctx context.Context, rental *model.Rental) (*model.Rental, error) {
	created := *rental
	if created.DateOut.IsZero() {
		created.DateOut = time.Now().UTC()
	}
	return r.insert(ctx, &created, &created.ID)
}

func (r *rentalRepository) Get(ctx context.Context, id model.ID) (*model.Rental, error) {
	return r.get(ctx, id)
}

func (r *rentalRepository) List(ctx context.Context, offset, limit int) ([]*model.Rental, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *rentalRepository) Lookup(ctx context.Context, customerID, movieID model.ID) (*model.Rental, error) {
	filter := bson.D{
		{Key: "customer._id", Value: customerID},
		{Key: "movie._id", Value: movieID},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "dateOut", Value: -1}})

	rental, err := r.findOne(ctx, filter, opts)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "rental not found",
				goerr.V("customer_id", customerID), goerr.V("movie_id", movieID))
		}
		return nil, goerr.Wrap(err, "failed to look up rental")
	}
	return rental, nil
}

// MarkReturned sets the return fields with a filter that only matches an
// open rental, so one of two concurrent returns wins.
func (r *rentalRepository) MarkReturned(ctx context.Context, rental *model.Rental) (*model.Rental, error) {
	filter := bson.D{
		{Key: "_id", Value: rental.ID},
		{Key: "dateReturned", Value: bson.D{{Key: "$exists", Value: false}}},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "dateReturned", Value: rental.DateReturned},
		{Key: "rentalFee", Value: rental.RentalFee},
	}}}

	var out model.Rental
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, goerr.Wrap(err, "failed to mark rental returned", goerr.V(model.IDKey, rental.ID))
	}

	if _, err := r.get(ctx, rental.ID); err != nil {
		return nil, err
	}
	return nil, goerr.Wrap(interfaces.ErrAlreadyReturned, "rental already returned", goerr.V(model.IDKey, rental.ID))
}

type userRepository struct {
	*collection[model.User]
}

// Create relies on the unique email index created by EnsureIndexes.
func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created := *user
	out, err := r.insert(ctx, &created, &created.ID)
	if err != nil && errors.Is(err, interfaces.ErrConflict) {
		return nil, goerr.Wrap(interfaces.ErrConflict, "email already registered", goerr.V(model.EmailKey, user.Email))
	}
	return out, err
}

func (r *userRepository) Get(ctx context.Context, id model.ID) (*model.User, error) {
	return r.get(ctx, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := r.findOne(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V(model.EmailKey, email))
		}
		return nil, goerr.Wrap(err, "failed to get user by email")
	}
	return user, nil
}
