package http

import (
	"net/http"

	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) error {
	page, _ := pagination.From(r.Context())
	movies, total, err := s.uc.Movie.List(r.Context(), page)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, pagination.NewEnvelope(movies, total, page))
	return nil
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) error {
	movie, err := s.uc.Movie.Get(r.Context(), pathID(r))
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, movie)
	return nil
}

func (s *Server) createMovie(w http.ResponseWriter, r *http.Request) error {
	var input model.MovieInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	movie, err := s.uc.Movie.Create(r.Context(), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, movie)
	return nil
}

func (s *Server) updateMovie(w http.ResponseWriter, r *http.Request) error {
	var input model.MovieInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	movie, err := s.uc.Movie.Update(r.Context(), pathID(r), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, movie)
	return nil
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request) error {
	movie, err := s.uc.Movie.Delete(r.Context(), pathID(r))
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, movie)
	return nil
}
