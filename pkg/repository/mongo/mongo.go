package mongo

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names without prefix.
const (
	CollectionGenres    = "genres"
	CollectionCustomers = "customers"
	CollectionMovies    = "movies"
	CollectionRentals   = "rentals"
	CollectionUsers     = "users"
)

type Mongo struct {
	client           *mongo.Client
	db               *mongo.Database
	collectionPrefix string

	genre    *genreRepository
	customer *customerRepository
	movie    *movieRepository
	rental   *rentalRepository
	user     *userRepository
}

var _ interfaces.Repository = &Mongo{}

type Option func(*Mongo)

func WithCollectionPrefix(prefix string) Option {
	return func(m *Mongo) {
		m.collectionPrefix = prefix
	}
}

// New connects to uri and uses database. The connection is verified with a
// ping before returning.
func New(ctx context.Context, uri, database string, opts ...Option) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to mongodb", goerr.V("database", database))
	}

	m := &Mongo{
		client: client,
		db:     client.Database(database),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.genre = &genreRepository{collection: newCollection[model.Genre](m.collection(CollectionGenres), "genre", bson.D{{Key: "name", Value: 1}})}
	m.customer = &customerRepository{collection: newCollection[model.Customer](m.collection(CollectionCustomers), "customer", bson.D{{Key: "name", Value: 1}})}
	m.movie = &movieRepository{collection: newCollection[model.Movie](m.collection(CollectionMovies), "movie", bson.D{{Key: "title", Value: 1}})}
	m.rental = &rentalRepository{collection: newCollection[model.Rental](m.collection(CollectionRentals), "rental", bson.D{{Key: "dateOut", Value: -1}})}
	m.user = &userRepository{collection: newCollection[model.User](m.collection(CollectionUsers), "user", bson.D{{Key: "email", Value: 1}})}

	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Mongo) collection(base string) *mongo.Collection {
	if m.collectionPrefix != "" {
		return m.db.Collection(m.collectionPrefix + "_" + base)
	}
	return m.db.Collection(base)
}

var indexedCollections = []string{CollectionUsers, CollectionGenres, CollectionCustomers, CollectionMovies, CollectionRentals}

func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		},
		CollectionGenres: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name")},
		},
		CollectionCustomers: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name")},
		},
		CollectionMovies: {
			{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetName("title")},
		},
		CollectionRentals: {
			{Keys: bson.D{{Key: "dateOut", Value: -1}}, Options: options.Index().SetName("date_out")},
			{
				Keys: bson.D{
					{Key: "customer._id", Value: 1},
					{Key: "movie._id", Value: 1},
					{Key: "dateOut", Value: -1},
				},
				Options: options.Index().SetName("customer_movie_date_out"),
			},
		},
	}
}

// PlannedIndexes lists the indexes EnsureIndexes creates as collection.name.
func PlannedIndexes() []string {
	specs := indexSpecs()
	var names []string
	for _, base := range indexedCollections {
		for _, idx := range specs[base] {
			names = append(names, base+"."+*idx.Options.Name)
		}
	}
	return names
}

// EnsureIndexes creates the indexes the repositories rely on. It is
// idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) ([]string, error) {
	specs := indexSpecs()

	var created []string
	for _, base := range indexedCollections {
		names, err := m.collection(base).Indexes().CreateMany(ctx, specs[base])
		if err != nil {
			return created, goerr.Wrap(err, "failed to create indexes", goerr.V("collection", base))
		}
		for _, name := range names {
			created = append(created, base+"."+name)
		}
	}
	return created, nil
}

func (m *Mongo) Genre() interfaces.GenreRepository {
	return m.genre
}

func (m *Mongo) Customer() interfaces.CustomerRepository {
	return m.customer
}

func (m *Mongo) Movie() interfaces.MovieRepository {
	return m.movie
}

func (m *Mongo) Rental() interfaces.RentalRepository {
	return m.rental
}

func (m *Mongo) User() interfaces.UserRepository {
	return m.user
}

func (m *Mongo) Backend() string { return "mongo" }

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return goerr.Wrap(err, "failed to ping mongodb")
	}
	return nil
}

// Drop removes every collection of this repository. Used by tests.
func (m *Mongo) Drop(ctx context.Context) error {
	for _, base := range []string{CollectionGenres, CollectionCustomers, CollectionMovies, CollectionRentals, CollectionUsers} {
		if err := m.collection(base).Drop(ctx); err != nil {
			return goerr.Wrap(err, "failed to drop collection", goerr.V("collection", base))
		}
	}
	return nil
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
