package http

import (
	"net/http"

	"github.com/vidly-dev/vidly/pkg/domain/model"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) error {
	page, _ := pagination.From(r.Context())
	customers, total, err := s.uc.Customer.List(r.Context(), page)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, pagination.NewEnvelope(customers, total, page))
	return nil
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) error {
	customer, err := s.uc.Customer.Get(r.Context(), pathID(r))
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, customer)
	return nil
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) error {
	var input model.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	customer, err := s.uc.Customer.Create(r.Context(), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, customer)
	return nil
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) error {
	var input model.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	customer, err := s.uc.Customer.Update(r.Context(), pathID(r), input)
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, customer)
	return nil
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) error {
	customer, err := s.uc.Customer.Delete(r.Context(), pathID(r))
	if err != nil {
		return err
	}
	writeJSON(r.Context(), w, http.StatusOK, customer)
	return nil
}
