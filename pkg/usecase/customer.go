package usecase

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

type CustomerUseCase struct {
	repo interfaces.Repository
}

func NewCustomerUseCase(repo interfaces.Repository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (uc *CustomerUseCase) List(ctx context.Context, page pagination.Page) ([]*model.Customer, int, error) {
	customers, total, err := uc.repo.Customer().List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, translate(err, ResourceCustomer, "failed to list customers")
	}
	return customers, total, nil
}

func (uc *CustomerUseCase) Get(ctx context.Context, id model.ID) (*model.Customer, error) {
	customer, err := uc.repo.Customer().Get(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceCustomer, "failed to get customer")
	}
	return customer, nil
}

func (uc *CustomerUseCase) Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	customer, err := uc.repo.Customer().Create(ctx, &model.Customer{
		Name:   input.Name,
		Phone:  input.Phone,
		IsGold: input.IsGold,
	})
	if err != nil {
		return nil, translate(err, ResourceCustomer, "failed to create customer")
	}
	return customer, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, id model.ID, input model.CustomerInput) (*model.Customer, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	customer, err := uc.repo.Customer().Update(ctx, &model.Customer{
		ID:     id,
		Name:   input.Name,
		Phone:  input.Phone,
		IsGold: input.IsGold,
	})
	if err != nil {
		return nil, translate(err, ResourceCustomer, "failed to update customer")
	}
	return customer, nil
}

func (uc *CustomerUseCase) Delete(ctx context.Context, id model.ID) (*model.Customer, error) {
	customer, err := uc.repo.Customer().Delete(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceCustomer, "failed to delete customer")
	}
	return customer, nil
}
