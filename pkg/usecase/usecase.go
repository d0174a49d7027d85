package usecase

import (
	"log/slog"
	"time"

	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
)

type UseCases struct {
	repo interfaces.Repository

	logger     *slog.Logger
	now        func() time.Time
	bcryptCost int

	Genre    *GenreUseCase
	Customer *CustomerUseCase
	Movie    *MovieUseCase
	Rental   *RentalUseCase
	User     *UserUseCase
	Auth     *AuthUseCase
	Authz    *Authorizer
}

type Option func(*UseCases)

// WithAuth sets the token issuer and verifier
func WithAuth(auth *AuthUseCase) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithAuthorizer replaces the default role policy
func WithAuthorizer(authz *Authorizer) Option {
	return func(uc *UseCases) {
		uc.Authz = authz
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(uc *UseCases) {
		uc.logger = logger
	}
}

// WithClock replaces time.Now, mainly for tests of rental fees
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithBcryptCost sets the password hashing cost
func WithBcryptCost(cost int) Option {
	return func(uc *UseCases) {
		uc.bcryptCost = cost
	}
}

func New(repo interfaces.Repository, opts ...Option) (*UseCases, error) {
	uc := &UseCases{
		repo:   repo,
		logger: logging.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.Auth == nil {
		auth, err := NewAuthUseCase(repo, nil)
		if err != nil {
			return nil, err
		}
		uc.Auth = auth
	}
	if uc.Authz == nil {
		authz, err := NewAuthorizer()
		if err != nil {
			return nil, err
		}
		uc.Authz = authz
	}

	uc.Genre = NewGenreUseCase(repo)
	uc.Customer = NewCustomerUseCase(repo)
	uc.Movie = NewMovieUseCase(repo)
	uc.Rental = NewRentalUseCase(repo, uc.logger, uc.now)
	uc.User = NewUserUseCase(repo, uc.Auth, uc.bcryptCost)

	return uc, nil
}

// Repository returns the underlying repository, used by health checks
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}
