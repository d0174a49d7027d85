package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

// Client facing messages
const (
	MsgInvalidGenre       = "Invalid genre."
	MsgInvalidCustomer    = "Invalid customer."
	MsgInvalidMovie       = "Invalid movie."
	MsgNotInStock         = "Movie not in stock."
	MsgReturnProcessed    = "Return already processed."
	MsgUserRegistered     = "User already registered."
	MsgInvalidCredentials = "Invalid email or password."
	MsgInvalidToken       = "Invalid token."
	MsgNoToken            = "Access denied. No token provided."
	MsgAccessDenied       = "Access denied."
	MsgInvalidID          = "Invalid ID."
)

// Resource names used in not found errors
const (
	ResourceGenre    = "Genre"
	ResourceCustomer = "Customer"
	ResourceMovie    = "Movie"
	ResourceRental   = "Rental"
	ResourceUser     = "User"
)

// Context keys for error values
const (
	CustomerIDKey = "customer_id"
	MovieIDKey    = "movie_id"
	RentalIDKey   = "rental_id"
)

// validate runs v.Validate and converts field errors into a validation
// error whose message is the first failure.
func validate(v interface{ Validate() error }) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	var verr model.ValidationErrors
	if errors.As(err, &verr) {
		return apperr.Validation(verr.First(), []model.FieldError(verr))
	}
	return apperr.Wrap(err, apperr.KindValidation, err.Error())
}

// translate maps repository sentinels onto client facing errors.
func translate(err error, resource, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, interfaces.ErrNotFound):
		return apperr.NotFound(resource)
	case errors.Is(err, interfaces.ErrConflict):
		return apperr.Wrap(err, apperr.KindConflict, resource+" already exists")
	default:
		return goerr.Wrap(err, msg)
	}
}
