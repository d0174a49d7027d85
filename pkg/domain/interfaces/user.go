package interfaces

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type UserRepository interface {
	// Create stores a new user. It fails with ErrConflict when the email is
	// already registered.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	Get(ctx context.Context, id model.ID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
