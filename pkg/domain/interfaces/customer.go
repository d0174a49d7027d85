package interfaces

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	Get(ctx context.Context, id model.ID) (*model.Customer, error)

	// List returns one page of customers sorted by name and the total count
	List(ctx context.Context, offset, limit int) ([]*model.Customer, int, error)

	Update(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id model.ID) (*model.Customer, error)
}
