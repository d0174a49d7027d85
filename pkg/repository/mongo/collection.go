package mongo

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

type collection[T any] struct {
	coll  *mongo.Collection
	label string
	sort  bson.D
}

func newCollection[T any](coll *mongo.Collection, label string, sort bson.D) *collection[T] {
	return &collection[T]{
		coll:  coll,
		label: label,
		// _id breaks ties so that pages are stable
		sort: append(append(bson.D{}, sort...), bson.E{Key: "_id", Value: 1}),
	}
}

func byID(id model.ID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (c *collection[T]) notFound(id model.ID) error {
	return goerr.Wrap(interfaces.ErrNotFound, c.label+" not found", goerr.V(model.IDKey, id))
}

func (c *collection[T]) wrap(err error, id model.ID, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return c.notFound(id)
	}
	return goerr.Wrap(err, "failed to "+op+" "+c.label, goerr.V(model.IDKey, id))
}

func (c *collection[T]) insert(ctx context.Context, v *T, id *model.ID) (*T, error) {
	if *id == "" {
		*id = model.NewID()
	}
	if _, err := c.coll.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, goerr.Wrap(interfaces.ErrConflict, c.label+" already exists", goerr.V(model.IDKey, *id))
		}
		return nil, goerr.Wrap(err, "failed to insert "+c.label, goerr.V(model.IDKey, *id))
	}
	return v, nil
}

func (c *collection[T]) findOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var v T
	if err := c.coll.FindOne(ctx, filter, opts...).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *collection[T]) get(ctx context.Context, id model.ID) (*T, error) {
	v, err := c.findOne(ctx, byID(id))
	if err != nil {
		return nil, c.wrap(err, id, "get")
	}
	return v, nil
}

// list runs the page query and the count concurrently.
func (c *collection[T]) list(ctx context.Context, offset, limit int) ([]*T, int, error) {
	var (
		items []*T
		total int64
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		opts := options.Find().SetSort(c.sort).SetSkip(int64(offset))
		if limit > 0 {
			opts.SetLimit(int64(limit))
		}
		cur, err := c.coll.Find(ctx, bson.D{}, opts)
		if err != nil {
			return goerr.Wrap(err, "failed to find "+c.label)
		}
		items = make([]*T, 0)
		if err := cur.All(ctx, &items); err != nil {
			return goerr.Wrap(err, "failed to decode "+c.label)
		}
		return nil
	})
	eg.Go(func() error {
		n, err := c.coll.CountDocuments(ctx, bson.D{})
		if err != nil {
			return goerr.Wrap(err, "failed to count "+c.label)
		}
		total = n
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

func (c *collection[T]) replace(ctx context.Context, id model.ID, v *T) (*T, error) {
	var out T
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	if err := c.coll.FindOneAndReplace(ctx, byID(id), v, opts).Decode(&out); err != nil {
		return nil, c.wrap(err, id, "update")
	}
	return &out, nil
}

func (c *collection[T]) remove(ctx context.Context, id model.ID) (*T, error) {
	var out T
	if err := c.coll.FindOneAndDelete(ctx, byID(id)).Decode(&out); err != nil {
		return nil, c.wrap(err, id, "delete")
	}
	return &out, nil
}
