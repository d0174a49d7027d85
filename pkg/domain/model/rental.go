package model

import (
	"math"
	"time"
)

// Rental records one movie lent to one customer.
type Rental struct {
	ID           ID               `json:"_id" firestore:"id" bson:"_id"`
	Customer     EmbeddedCustomer `json:"customer" firestore:"customer" bson:"customer"`
	Movie        EmbeddedMovie    `json:"movie" firestore:"movie" bson:"movie"`
	DateOut      time.Time        `json:"dateOut" firestore:"date_out" bson:"dateOut"`
	DateReturned *time.Time       `json:"dateReturned,omitempty" firestore:"date_returned" bson:"dateReturned,omitempty"`
	RentalFee    *float64         `json:"rentalFee,omitempty" firestore:"rental_fee" bson:"rentalFee,omitempty"`
}

// RentalInput is the client payload of both rentals and returns.
type RentalInput struct {
	CustomerID ID `json:"customerId"`
	MovieID    ID `json:"movieId"`
}

func (x RentalInput) Validate() error {
	var c checker
	c.id("customerId", x.CustomerID)
	c.id("movieId", x.MovieID)
	return c.result()
}

// IsReturned reports whether the rental has been closed.
func (x *Rental) IsReturned() bool { return x.DateReturned != nil }

// Return closes the rental at now. The fee is the number of whole days since
// DateOut times the movie's daily rate.
func (x *Rental) Return(now time.Time) {
	returned := now.UTC()
	days := math.Floor(returned.Sub(x.DateOut).Hours() / 24)
	if days < 0 {
		days = 0
	}
	fee := days * x.Movie.DailyRentalRate
	x.DateReturned = &returned
	x.RentalFee = &fee
}
