package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/domain/model/auth"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is the lifetime of issued tokens.
const DefaultTokenTTL = 24 * time.Hour

// MinKeyLength is the minimum length of a signing key.
const MinKeyLength = 32

// Token claim names
const (
	claimID      = "_id"
	claimName    = "name"
	claimEmail   = "email"
	claimIsAdmin = "isAdmin"
)

var ErrKeyTooShort = goerr.New("signing key too short")

type AuthUseCase struct {
	repo interfaces.Repository
	key  []byte
	ttl  time.Duration
	now  func() time.Time
}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithTokenTTL sets the lifetime of issued tokens
func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(uc *AuthUseCase) {
		uc.ttl = ttl
	}
}

// WithAuthClock replaces time.Now for token timestamps
func WithAuthClock(now func() time.Time) AuthOption {
	return func(uc *AuthUseCase) {
		uc.now = now
	}
}

// NewAuthUseCase creates an HS256 token issuer. A nil key selects a random
// key, valid only for the lifetime of the process.
func NewAuthUseCase(repo interfaces.Repository, key []byte, options ...AuthOption) (*AuthUseCase, error) {
	if key == nil {
		key = make([]byte, MinKeyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, goerr.Wrap(err, "failed to generate signing key")
		}
	}
	if len(key) < MinKeyLength {
		return nil, goerr.Wrap(ErrKeyTooShort, "invalid JWT key", goerr.V("min_length", MinKeyLength))
	}

	uc := &AuthUseCase{
		repo: repo,
		key:  key,
		ttl:  DefaultTokenTTL,
		now:  time.Now,
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc, nil
}

// Issue signs a token for user.
func (uc *AuthUseCase) Issue(user *model.User) (string, error) {
	now := uc.now().UTC()
	token, err := jwt.NewBuilder().
		Subject(user.ID.String()).
		IssuedAt(now).
		Expiration(now.Add(uc.ttl)).
		Claim(claimID, user.ID.String()).
		Claim(claimName, user.Name).
		Claim(claimEmail, user.Email).
		Claim(claimIsAdmin, user.IsAdmin).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, uc.key))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// Verify parses a signed token. Any failure is reported to the client as
// an invalid token.
func (uc *AuthUseCase) Verify(_ context.Context, raw string) (*auth.Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperr.Unauthorized(MsgNoToken)
	}

	parsed, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, uc.key),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(uc.now)),
	)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, MsgInvalidToken)
	}

	token := &auth.Token{
		UserID:    model.ID(parsed.Subject()),
		IssuedAt:  parsed.IssuedAt(),
		ExpiresAt: parsed.Expiration(),
	}
	if v, ok := parsed.Get(claimEmail); ok {
		token.Email, _ = v.(string)
	}
	if v, ok := parsed.Get(claimName); ok {
		token.Name, _ = v.(string)
	}
	if v, ok := parsed.Get(claimIsAdmin); ok {
		token.IsAdmin, _ = v.(bool)
	}

	if err := token.Validate(uc.now()); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, MsgInvalidToken)
	}
	return token, nil
}

// Login checks credentials and returns a signed token.
func (uc *AuthUseCase) Login(ctx context.Context, creds model.Credentials) (string, error) {
	if err := validate(creds); err != nil {
		return "", err
	}

	user, err := uc.repo.User().GetByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return "", apperr.Validation(MsgInvalidCredentials, nil)
		}
		return "", goerr.Wrap(err, "failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return "", apperr.Validation(MsgInvalidCredentials, nil)
	}

	return uc.Issue(user)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
