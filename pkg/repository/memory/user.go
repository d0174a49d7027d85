package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

type userRepository struct {
	*store[model.User]

	// emailMu serializes the uniqueness check with the insert
	emailMu sync.Mutex
	byEmail map[string]model.ID
}

func newUserRepository() *userRepository {
	return &userRepository{
		store: newStore("user",
			func(u *model.User) *model.ID { return &u.ID },
			func(a, b *model.User) bool { return a.Email < b.Email },
		),
		byEmail: make(map[string]model.ID),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	key := normalizeEmail(user.Email)

	r.emailMu.Lock()
	defer r.emailMu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return nil, goerr.Wrap(interfaces.ErrConflict, "email already registered", goerr.V(model.EmailKey, user.Email))
	}

	created, err := r.create(ctx, user)
	if err != nil {
		return nil, err
	}
	r.byEmail[key] = created.ID
	return created, nil
}

func (r *userRepository) Get(ctx context.Context, id model.ID) (*model.User, error) {
	return r.get(ctx, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.emailMu.Lock()
	id, exists := r.byEmail[normalizeEmail(email)]
	r.emailMu.Unlock()

	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V(model.EmailKey, email))
	}
	return r.get(ctx, id)
}
