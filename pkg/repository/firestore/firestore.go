package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"google.golang.org/api/iterator"
)

// Collection names without prefix.
const (
	CollectionGenres     = "genres"
	CollectionCustomers  = "customers"
	CollectionMovies     = "movies"
	CollectionRentals    = "rentals"
	CollectionUsers      = "users"
	CollectionUserEmails = "user_emails"
)

type Firestore struct {
	client           *firestore.Client
	collectionPrefix string

	genre    *genreRepository
	customer *customerRepository
	movie    *movieRepository
	rental   *rentalRepository
	user     *userRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix isolates every collection under prefix, mainly for
// tests sharing one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}

	f.genre = &genreRepository{collection: newCollection(f, CollectionGenres, "genre", "name", firestore.Asc,
		func(g *model.Genre) *model.ID { return &g.ID })}
	f.customer = &customerRepository{collection: newCollection(f, CollectionCustomers, "customer", "name", firestore.Asc,
		func(c *model.Customer) *model.ID { return &c.ID })}
	f.movie = &movieRepository{collection: newCollection(f, CollectionMovies, "movie", "title", firestore.Asc,
		func(m *model.Movie) *model.ID { return &m.ID })}
	f.rental = &rentalRepository{collection: newCollection(f, CollectionRentals, "rental", "date_out", firestore.Desc,
		func(r *model.Rental) *model.ID { return &r.ID })}
	f.user = &userRepository{collection: newCollection(f, CollectionUsers, "user", "email", firestore.Asc,
		func(u *model.User) *model.ID { return &u.ID })}

	return f, nil
}

// CollectionName returns the physical name of a collection.
func (f *Firestore) CollectionName(base string) string {
	return PrefixedName(f.collectionPrefix, base)
}

// PrefixedName returns the physical name of base under prefix.
func PrefixedName(prefix, base string) string {
	if prefix != "" {
		return prefix + "_" + base
	}
	return base
}

func (f *Firestore) Genre() interfaces.GenreRepository {
	return f.genre
}

func (f *Firestore) Customer() interfaces.CustomerRepository {
	return f.customer
}

func (f *Firestore) Movie() interfaces.MovieRepository {
	return f.movie
}

func (f *Firestore) Rental() interfaces.RentalRepository {
	return f.rental
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Backend() string { return "firestore" }

// Ping runs a minimal read to check that the database is reachable.
func (f *Firestore) Ping(ctx context.Context) error {
	iter := f.client.Collection(f.CollectionName(CollectionGenres)).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return goerr.Wrap(err, "failed to ping firestore")
	}
	return nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
