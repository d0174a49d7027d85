package memory

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	genre    *genreRepository
	customer *customerRepository
	movie    *movieRepository
	rental   *rentalRepository
	user     *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		genre:    newGenreRepository(),
		customer: newCustomerRepository(),
		movie:    newMovieRepository(),
		rental:   newRentalRepository(),
		user:     newUserRepository(),
	}
}

func (m *Memory) Genre() interfaces.GenreRepository {
	return m.genre
}

func (m *Memory) Customer() interfaces.CustomerRepository {
	return m.customer
}

func (m *Memory) Movie() interfaces.MovieRepository {
	return m.movie
}

func (m *Memory) Rental() interfaces.RentalRepository {
	return m.rental
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Backend() string { return "memory" }

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }
