package http

import (
	"net/http"

	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

func (s *Server) listRentals(w http.ResponseWriter, r *http.Request) error {
	page, _ := pagination.From(r.Context())
	rentals, total, err := s.uc.Rental.List(r.Context(), page)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, pagination.NewEnvelope(rentals, total, page))
	return nil
}

func (s *Server) getRental(w http.ResponseWriter, r *http.Request) error {
	rental, err := s.uc.Rental.Get(r.Context(), pathID(r))
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, rental)
	return nil
}

func (s *Server) createRental(w http.ResponseWriter, r *http.Request) error {
	var input model.RentalInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	rental, err := s.uc.Rental.Create(r.Context(), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, rental)
	return nil
}

// createReturn closes the open rental of a customer and movie pair.
func (s *Server) createReturn(w http.ResponseWriter, r *http.Request) error {
	var input model.RentalInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	rental, err := s.uc.Rental.Return(r.Context(), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, rental)
	return nil
}
