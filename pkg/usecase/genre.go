package usecase

import (
	"context"

	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

type GenreUseCase struct {
	repo interfaces.Repository
}

func NewGenreUseCase(repo interfaces.Repository) *GenreUseCase {
	return &GenreUseCase{repo: repo}
}

func (uc *GenreUseCase) List(ctx context.Context, page pagination.Page) ([]*model.Genre, int, error) {
	genres, total, err := uc.repo.Genre().List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, translate(err, ResourceGenre, "failed to list genres")
	}
	return genres, total, nil
}

func (uc *GenreUseCase) Get(ctx context.Context, id model.ID) (*model.Genre, error) {
	genre, err := uc.repo.Genre().Get(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceGenre, "failed to get genre")
	}
	return genre, nil
}

func (uc *GenreUseCase) Create(ctx context.Context, input model.GenreInput) (*model.Genre, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	genre, err := uc.repo.Genre().Create(ctx, &model.Genre{Name: input.Name})
	if err != nil {
		return nil, translate(err, ResourceGenre, "failed to create genre")
	}
	return genre, nil
}

// Update replaces only the fields of GenreInput.
func (uc *GenreUseCase) Update(ctx context.Context, id model.ID, input model.GenreInput) (*model.Genre, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	genre, err := uc.repo.Genre().Update(ctx, &model.Genre{ID: id, Name: input.Name})
	if err != nil {
		return nil, translate(err, ResourceGenre, "failed to update genre")
	}
	return genre, nil
}

func (uc *GenreUseCase) Delete(ctx context.Context, id model.ID) (*model.Genre, error) {
	genre, err := uc.repo.Genre().Delete(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceGenre, "failed to delete genre")
	}
	return genre, nil
}
