package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// collection stores documents of type T keyed by their ID.
type collection[T any] struct {
	db      *Firestore
	base    string
	label   string
	orderBy string
	dir     firestore.Direction
	id      func(*T) *model.ID
}

func newCollection[T any](db *Firestore, base, label, orderBy string, dir firestore.Direction, id func(*T) *model.ID) *collection[T] {
	return &collection[T]{db: db, base: base, label: label, orderBy: orderBy, dir: dir, id: id}
}

func (c *collection[T]) ref() *firestore.CollectionRef {
	return c.db.client.Collection(c.db.CollectionName(c.base))
}

func (c *collection[T]) notFound(id model.ID) error {
	return goerr.Wrap(interfaces.ErrNotFound, c.label+" not found", goerr.V(model.IDKey, id))
}

func decode[T any](doc *firestore.DocumentSnapshot) (*T, error) {
	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal document", goerr.V("path", doc.Ref.Path))
	}
	return &v, nil
}

func (c *collection[T]) create(ctx context.Context, v *T) (*T, error) {
	created := *v
	idp := c.id(&created)
	if *idp == "" {
		*idp = model.NewID()
	}

	if _, err := c.ref().Doc(idp.String()).Create(ctx, &created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(interfaces.ErrConflict, c.label+" already exists", goerr.V(model.IDKey, *idp))
		}
		return nil, goerr.Wrap(err, "failed to create "+c.label, goerr.V(model.IDKey, *idp))
	}
	return &created, nil
}

func (c *collection[T]) get(ctx context.Context, id model.ID) (*T, error) {
	if id.Validate() != nil {
		return nil, c.notFound(id)
	}

	doc, err := c.ref().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, c.notFound(id)
		}
		return nil, goerr.Wrap(err, "failed to get "+c.label, goerr.V(model.IDKey, id))
	}
	return decode[T](doc)
}

// count returns the number of documents matched by q using an aggregation
// query, without reading the documents.
func (c *collection[T]) count(ctx context.Context, q firestore.Query) (int, error) {
	result, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count "+c.label)
	}
	v, ok := result["total"].(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count result", goerr.V("collection", c.base))
	}
	return int(v.GetIntegerValue()), nil
}

func (c *collection[T]) all(ctx context.Context, q firestore.Query) ([]*T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	items := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate "+c.label)
		}
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (c *collection[T]) list(ctx context.Context, offset, limit int) ([]*T, int, error) {
	total, err := c.count(ctx, c.ref().Query)
	if err != nil {
		return nil, 0, err
	}

	q := c.ref().OrderBy(c.orderBy, c.dir).Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	items, err := c.all(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// modify reads, changes and writes back one document in a transaction.
func (c *collection[T]) modify(ctx context.Context, id model.ID, fn func(*T) error) (*T, error) {
	if id.Validate() != nil {
		return nil, c.notFound(id)
	}

	docRef := c.ref().Doc(id.String())
	var result *T
	err := c.db.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return c.notFound(id)
			}
			return goerr.Wrap(err, "failed to get "+c.label, goerr.V(model.IDKey, id))
		}
		v, err := decode[T](doc)
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
		*c.id(v) = id
		result = v
		return tx.Set(docRef, v)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *collection[T]) update(ctx context.Context, v *T) (*T, error) {
	next := *v
	return c.modify(ctx, *c.id(&next), func(cur *T) error {
		*cur = next
		return nil
	})
}

func (c *collection[T]) delete(ctx context.Context, id model.ID) (*T, error) {
	if id.Validate() != nil {
		return nil, c.notFound(id)
	}

	docRef := c.ref().Doc(id.String())
	var removed *T
	err := c.db.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return c.notFound(id)
			}
			return goerr.Wrap(err, "failed to get "+c.label, goerr.V(model.IDKey, id))
		}
		if removed, err = decode[T](doc); err != nil {
			return err
		}
		return tx.Delete(docRef)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
