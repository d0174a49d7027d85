package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

// store keeps documents of one collection. Stored values are never shared
// with callers: every read and write goes through clone.
type store[T any] struct {
	mu    sync.RWMutex
	name  string
	items map[model.ID]*T
	id    func(*T) *model.ID
	clone func(*T) *T
	less  func(a, b *T) bool
}

func newStore[T any](name string, id func(*T) *model.ID, less func(a, b *T) bool) *store[T] {
	return &store[T]{
		name:  name,
		items: make(map[model.ID]*T),
		id:    id,
		clone: func(v *T) *T { c := *v; return &c },
		less:  less,
	}
}

func (s *store[T]) notFound(id model.ID) error {
	return goerr.Wrap(interfaces.ErrNotFound, s.name+" not found", goerr.V(model.IDKey, id))
}

func (s *store[T]) create(_ context.Context, v *T) (*T, error) {
	created := s.clone(v)
	idp := s.id(created)
	if *idp == "" {
		*idp = model.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[*idp]; exists {
		return nil, goerr.Wrap(interfaces.ErrConflict, s.name+" already exists", goerr.V(model.IDKey, *idp))
	}
	s.items[*idp] = created
	return s.clone(created), nil
}

func (s *store[T]) get(_ context.Context, id model.ID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.items[id]
	if !exists {
		return nil, s.notFound(id)
	}
	return s.clone(v), nil
}

func (s *store[T]) list(_ context.Context, offset, limit int) ([]*T, int, error) {
	s.mu.RLock()
	all := make([]*T, 0, len(s.items))
	for _, v := range s.items {
		all = append(all, s.clone(v))
	}
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		if s.less(all[i], all[j]) {
			return true
		}
		if s.less(all[j], all[i]) {
			return false
		}
		return *s.id(all[i]) < *s.id(all[j])
	})

	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []*T{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (s *store[T]) update(_ context.Context, v *T) (*T, error) {
	updated := s.clone(v)
	id := *s.id(updated)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return nil, s.notFound(id)
	}
	s.items[id] = updated
	return s.clone(updated), nil
}

// modify applies fn to the stored document under the write lock.
func (s *store[T]) modify(_ context.Context, id model.ID, fn func(*T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.items[id]
	if !exists {
		return nil, s.notFound(id)
	}
	next := s.clone(v)
	if err := fn(next); err != nil {
		return nil, err
	}
	s.items[id] = next
	return s.clone(next), nil
}

func (s *store[T]) delete(_ context.Context, id model.ID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.items[id]
	if !exists {
		return nil, s.notFound(id)
	}
	delete(s.items, id)
	return v, nil
}

// find returns the documents matching pred.
func (s *store[T]) find(pred func(*T) bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []*T
	for _, v := range s.items {
		if pred(v) {
			found = append(found, s.clone(v))
		}
	}
	return found
}
