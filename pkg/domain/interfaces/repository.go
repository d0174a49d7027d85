package interfaces

import (
	"context"
)

// Repository defines the interface for data persistence
type Repository interface {
	Genre() GenreRepository
	Customer() CustomerRepository
	Movie() MovieRepository
	Rental() RentalRepository
	User() UserRepository

	// Backend returns the name of the storage backend
	Backend() string

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	// Close releases backend connections
	Close() error
}
