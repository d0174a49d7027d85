package http

import (
	"net/http"

	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/domain/model/auth"
	"github.com/vidly-dev/vidly/pkg/usecase"
)

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) error {
	var input model.UserInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	user, token, err := s.uc.User.Register(r.Context(), input)
	if err != nil {
		return err
	}
	w.Header().Set(AuthHeader, token)
	writeJSON(r.Context(), w, http.StatusOK, user.Public())
	return nil
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) error {
	token, ok := auth.TokenFromContext(r.Context())
	if !ok {
		return apperr.Unauthorized(usecase.MsgNoToken)
	}
	user, err := s.uc.User.Me(r.Context(), token.UserID)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, user)
	return nil
}

// login responds with the signed token as a JSON string.
func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		return err
	}
	token, err := s.uc.Auth.Login(r.Context(), creds)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, token)
	return nil
}
