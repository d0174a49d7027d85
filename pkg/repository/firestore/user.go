package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userRepository struct {
	*collection[model.User]
}

// userEmailDocument reserves an email address. Its document ID is derived
// from the normalized address, which makes registration unique without a
// query.
type userEmailDocument struct {
	UserID string `firestore:"user_id"`
}

func (r *userRepository) emails() *firestore.CollectionRef {
	return r.db.client.Collection(r.db.CollectionName(CollectionUserEmails))
}

func emailKey(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created := *user
	if created.ID == "" {
		created.ID = model.NewID()
	}

	emailRef := r.emails().Doc(emailKey(user.Email))
	userRef := r.ref().Doc(created.ID.String())

	err := r.db.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(emailRef); err == nil {
			return goerr.Wrap(interfaces.ErrConflict, "email already registered", goerr.V(model.EmailKey, user.Email))
		} else if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to check email")
		}

		if err := tx.Create(emailRef, &userEmailDocument{UserID: created.ID.String()}); err != nil {
			return goerr.Wrap(err, "failed to reserve email")
		}
		return tx.Create(userRef, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) Get(ctx context.Context, id model.ID) (*model.User, error) {
	return r.get(ctx, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	doc, err := r.emails().Doc(emailKey(email)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V(model.EmailKey, email))
		}
		return nil, goerr.Wrap(err, "failed to get user email", goerr.V(model.EmailKey, email))
	}

	var ref userEmailDocument
	if err := doc.DataTo(&ref); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user email")
	}
	return r.get(ctx, model.ID(ref.UserID))
}
