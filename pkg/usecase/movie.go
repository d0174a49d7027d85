package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

type MovieUseCase struct {
	repo interfaces.Repository
}

func NewMovieUseCase(repo interfaces.Repository) *MovieUseCase {
	return &MovieUseCase{repo: repo}
}

func (uc *MovieUseCase) List(ctx context.Context, page pagination.Page) ([]*model.Movie, int, error) {
	movies, total, err := uc.repo.Movie().List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, translate(err, ResourceMovie, "failed to list movies")
	}
	return movies, total, nil
}

func (uc *MovieUseCase) Get(ctx context.Context, id model.ID) (*model.Movie, error) {
	movie, err := uc.repo.Movie().Get(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceMovie, "failed to get movie")
	}
	return movie, nil
}

// build validates input and resolves the genre it references.
func (uc *MovieUseCase) build(ctx context.Context, id model.ID, input model.MovieInput) (*model.Movie, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	genre, err := uc.repo.Genre().Get(ctx, input.GenreID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperr.Validation(MsgInvalidGenre, nil)
		}
		return nil, goerr.Wrap(err, "failed to get genre", goerr.V(model.IDKey, input.GenreID))
	}

	return &model.Movie{
		ID:              id,
		Title:           input.Title,
		Genre:           genre.Embed(),
		NumberInStock:   int(*input.NumberInStock),
		DailyRentalRate: *input.DailyRentalRate,
	}, nil
}

func (uc *MovieUseCase) Create(ctx context.Context, input model.MovieInput) (*model.Movie, error) {
	movie, err := uc.build(ctx, "", input)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Movie().Create(ctx, movie)
	if err != nil {
		return nil, translate(err, ResourceMovie, "failed to create movie")
	}
	return created, nil
}

func (uc *MovieUseCase) Update(ctx context.Context, id model.ID, input model.MovieInput) (*model.Movie, error) {
	movie, err := uc.build(ctx, id, input)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Movie().Update(ctx, movie)
	if err != nil {
		return nil, translate(err, ResourceMovie, "failed to update movie")
	}
	return updated, nil
}

func (uc *MovieUseCase) Delete(ctx context.Context, id model.ID) (*model.Movie, error) {
	movie, err := uc.repo.Movie().Delete(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceMovie, "failed to delete movie")
	}
	return movie, nil
}
