package memory

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type customerRepository struct {
	*store[model.Customer]
}

func newCustomerRepository() *customerRepository {
	return &customerRepository{
		store: newStore("customer",
			func(c *model.Customer) *model.ID { return &c.ID },
			func(a, b *model.Customer) bool { return a.Name < b.Name },
		),
	}
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
