package http

import (
	"net/http"

	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) error {
	page, _ := pagination.From(r.Context())
	genres, total, err := s.uc.Genre.List(r.Context(), page)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, pagination.NewEnvelope(genres, total, page))
	return nil
}

func (s *Server) getGenre(w http.ResponseWriter, r *http.Request) error {
	genre, err := s.uc.Genre.Get(r.Context(), pathID(r))
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, genre)
	return nil
}

func (s *Server) createGenre(w http.ResponseWriter, r *http.Request) error {
	var input model.GenreInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	genre, err := s.uc.Genre.Create(r.Context(), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, genre)
	return nil
}

func (s *Server) updateGenre(w http.ResponseWriter, r *http.Request) error {
	var input model.GenreInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	genre, err := s.uc.Genre.Update(r.Context(), pathID(r), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, genre)
	return nil
}

func (s *Server) deleteGenre(w http.ResponseWriter, r *http.Request) error {
	genre, err := s.uc.Genre.Delete(r.Context(), pathID(r))
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, genre)
	return nil
}
