package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

func runGenreRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and Get returns it", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Genre().Create(ctx, &model.Genre{Name: "Action"})
		gt.NoError(t, err).Required()
		gt.NoError(t, created.ID.Validate())
		gt.String(t, created.Name).Equal("Action")

		got, err := repo.Genre().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(created)
	})

	t.Run("Create keeps caller value untouched", func(t *testing.T) {
		repo := newRepo(t)
		input := &model.Genre{Name: "Drama"}

		created, err := repo.Genre().Create(context.Background(), input)
		gt.NoError(t, err).Required()
		gt.Value(t, input.ID).Equal(model.ID(""))
		gt.Value(t, created.ID).NotEqual(model.ID(""))
	})

	t.Run("Get missing returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Genre().Get(context.Background(), model.NewID())
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("List pages sorted by name with total", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 9; i >= 0; i-- {
			_, err := repo.Genre().Create(ctx, &model.Genre{Name: fmt.Sprintf("Genre %02d", i)})
			gt.NoError(t, err).Required()
		}

		page, total, err := repo.Genre().List(ctx, 3, 4)
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(10)
		gt.Array(t, page).Length(4)
		gt.String(t, page[0].Name).Equal("Genre 03")
		gt.String(t, page[3].Name).Equal("Genre 06")

		tail, total, err := repo.Genre().List(ctx, 8, 4)
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(10)
		gt.Array(t, tail).Length(2)

		beyond, total, err := repo.Genre().List(ctx, 40, 4)
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(10)
		gt.Array(t, beyond).Length(0)
	})

	t.Run("Update replaces document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Genre().Create(ctx, &model.Genre{Name: "Horor"})
		gt.NoError(t, err).Required()

		created.Name = "Horror"
		updated, err := repo.Genre().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.String(t, updated.Name).Equal("Horror")

		got, err := repo.Genre().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.String(t, got.Name).Equal("Horror")
	})

	t.Run("Update missing returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Genre().Update(context.Background(), &model.Genre{ID: model.NewID(), Name: "Ghost"})
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Delete returns removed document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Genre().Create(ctx, &model.Genre{Name: "Comedy"})
		gt.NoError(t, err).Required()

		removed, err := repo.Genre().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.String(t, removed.Name).Equal("Comedy")

		_, err = repo.Genre().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		_, err = repo.Genre().Delete(ctx, created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}

func TestGenreRepository(t *testing.T) {
	runAllBackends(t, runGenreRepositoryTest)
}
