package firestore

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type customerRepository struct {
	*collection[model.Customer]
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	return r.create(ctx, customer)
}

func (r *customerRepository) Get(ctx context.Context, id model.ID) (*model.Customer, error) {
	return r.get(ctx, id)
}

func (r *customerRepository) List(ctx context.Context, offset, limit int) ([]*model.Customer, int, error) {
	return r.list(ctx, offset, limit)
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	return r.update(ctx, customer)
}

func (r *customerRepository) Delete(ctx context.Context, id model.ID) (*model.Customer, error) {
	return r.delete(ctx, id)
}
