package auth

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

// Role is the authorization subject used by the policy enforcer.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Token is the verified identity carried by a request.
type Token struct {
	UserID    model.ID
	Email     string
	Name      string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

var ErrTokenExpired = goerr.New("token expired")

// NewToken creates an identity for user valid for ttl from now.
func NewToken(user *model.User, ttl time.Duration) *Token {
	now := time.Now().UTC().Truncate(time.Second)
	return &Token{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Role returns RoleAdmin for administrators and RoleUser otherwise.
func (x *Token) Role() Role {
	if x.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Validate checks the token subject and expiry at now.
func (x *Token) Validate(now time.Time) error {
	if err := x.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token subject")
	}
	if !x.ExpiresAt.IsZero() && now.After(x.ExpiresAt) {
		return goerr.Wrap(ErrTokenExpired, "token is no longer valid", goerr.V("expires_at", x.ExpiresAt))
	}
	return nil
}

type ctxTokenKey struct{}

// ContextWithToken stores token in ctx.
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext returns the token of an authenticated request.
func TokenFromContext(ctx context.Context) (*Token, bool) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	return token, ok && token != nil
}
