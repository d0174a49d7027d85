package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase struct {
	repo interfaces.Repository
	auth *AuthUseCase
	cost int
}

func NewUserUseCase(repo interfaces.Repository, auth *AuthUseCase, cost int) *UserUseCase {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserUseCase{repo: repo, auth: auth, cost: cost}
}

// Register creates a non-admin account and returns it with a signed token.
func (uc *UserUseCase) Register(ctx context.Context, input model.UserInput) (*model.User, string, error) {
	if err := validate(input); err != nil {
		return nil, "", err
	}

	user, err := uc.create(ctx, input.Name, input.Email, input.Password, false)
	if err != nil {
		return nil, "", err
	}

	token, err := uc.auth.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (uc *UserUseCase) create(ctx context.Context, name, email, password string, isAdmin bool) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user, err := uc.repo.User().Create(ctx, &model.User{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrConflict) {
			return nil, apperr.Wrap(err, apperr.KindConflict, MsgUserRegistered)
		}
		return nil, goerr.Wrap(err, "failed to create user")
	}
	return user, nil
}

// Me returns the account of the authenticated user.
func (uc *UserUseCase) Me(ctx context.Context, id model.ID) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, translate(err, ResourceUser, "failed to get user")
	}
	return user, nil
}
