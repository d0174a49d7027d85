package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/domain/model/auth"
	"github.com/vidly-dev/vidly/pkg/usecase"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
	"github.com/vidly-dev/vidly/pkg/utils/sanitize"
)

// AuthHeader carries the signed token of the caller.
const AuthHeader = "x-auth-token"

const (
	msgMalformedBody = "Invalid JSON body"
	msgBodyTooLarge  = "Request body too large"
)

// HandlerFunc is a route handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Step runs before a handler. It either returns the request to continue
// with, possibly carrying a new context, or an error that ends the request.
type Step func(r *http.Request) (*http.Request, error)

// chain runs steps in order and then h. The first error is rendered and
// nothing after it runs.
func (s *Server) chain(h HandlerFunc, steps ...Step) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, step := range steps {
			next, err := step(r)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			r = next
		}
		if err := h(w, r); err != nil {
			s.fail(w, r, err)
		}
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var rej *sanitize.Rejection
	if errors.As(err, &rej) {
		s.responder.RespondRejection(w, r, rej)
		return
	}
	s.responder.Respond(w, r, err)
}

// authenticate requires a valid token in AuthHeader.
func (s *Server) authenticate(r *http.Request) (*http.Request, error) {
	raw := r.Header.Get(AuthHeader)
	if raw == "" {
		return r, apperr.Unauthorized(usecase.MsgNoToken)
	}

	token, err := s.uc.Auth.Verify(r.Context(), raw)
	if err != nil {
		return r, err
	}

	ctx := auth.ContextWithToken(r.Context(), token)
	ctx = logging.With(ctx, logging.From(ctx).With("user_id", token.UserID.String()))
	return r.WithContext(ctx), nil
}

// requireAdmin must follow authenticate.
func (s *Server) requireAdmin(r *http.Request) (*http.Request, error) {
	token, _ := auth.TokenFromContext(r.Context())
	if err := s.uc.Authz.Authorize(token, r.URL.Path, r.Method); err != nil {
		return r, err
	}
	return r, nil
}

func validateID(r *http.Request) (*http.Request, error) {
	if err := pathID(r).Validate(); err != nil {
		return r, apperr.Wrap(err, apperr.KindNotFound, usecase.MsgInvalidID)
	}
	return r, nil
}

func pathID(r *http.Request) model.ID {
	return model.ID(chi.URLParam(r, "id"))
}

func (s *Server) paginate(r *http.Request) (*http.Request, error) {
	page := pagination.Parse(r.URL.Query(), s.pageConfig)
	return r.WithContext(pagination.With(r.Context(), page)), nil
}

func (s *Server) sanitizeBody(r *http.Request) (*http.Request, error) {
	next, err := s.guard.Body(r)
	return next, bodyError(err)
}

func (s *Server) sanitizeUpdate(r *http.Request) (*http.Request, error) {
	next, err := s.guard.Update(r)
	return next, bodyError(err)
}

// bodyError classifies failures to read a body as validation errors.
// Rejections pass through unchanged.
func bodyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sanitize.ErrBodyTooLarge):
		return apperr.Wrap(err, apperr.KindValidation, msgBodyTooLarge)
	case errors.Is(err, sanitize.ErrMalformed), errors.Is(err, sanitize.ErrTooDeep):
		return apperr.Wrap(err, apperr.KindValidation, msgMalformedBody)
	}
	return err
}

// decodeJSON reads the request body into dst. Unknown fields are rejected
// and an empty body decodes to the zero value so that field validation
// reports what is missing.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, sanitize.DefaultMaxBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Wrap(err, apperr.KindValidation, decodeMessage(err))
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%q must be a %s", typeErr.Field, jsonType(typeErr.Type))
	}

	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		return strings.TrimPrefix(msg, unknownPrefix) + " is not allowed"
	}
	return msgMalformedBody
}

func jsonType(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
