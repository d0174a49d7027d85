package model

// Stock and rate bounds of a movie.
const (
	MaxNumberInStock   = 255
	MaxDailyRentalRate = 255
)

// Movie is a title available for rental.
type Movie struct {
	ID              ID            `json:"_id" firestore:"id" bson:"_id"`
	Title           string        `json:"title" firestore:"title" bson:"title"`
	Genre           EmbeddedGenre `json:"genre" firestore:"genre" bson:"genre"`
	NumberInStock   int           `json:"numberInStock" firestore:"number_in_stock" bson:"numberInStock"`
	DailyRentalRate float64       `json:"dailyRentalRate" firestore:"daily_rental_rate" bson:"dailyRentalRate"`
}

// MovieInput is the client payload for creating or replacing a movie.
// Numeric fields are pointers so that a missing field differs from zero.
type MovieInput struct {
	Title           string   `json:"title"`
	GenreID         ID       `json:"genreId"`
	NumberInStock   *float64 `json:"numberInStock"`
	DailyRentalRate *float64 `json:"dailyRentalRate"`
}

func (x MovieInput) Validate() error {
	var c checker
	c.str("title", x.Title, 5, 255)
	c.id("genreId", x.GenreID)
	c.number("numberInStock", x.NumberInStock, 0, MaxNumberInStock)
	if x.NumberInStock != nil && *x.NumberInStock != float64(int(*x.NumberInStock)) {
		c.add("numberInStock", `"numberInStock" must be an integer`)
	}
	c.number("dailyRentalRate", x.DailyRentalRate, 0, MaxDailyRentalRate)
	return c.result()
}

// Embed returns the denormalized copy stored inside rentals.
func (x *Movie) Embed() EmbeddedMovie {
	return EmbeddedMovie{ID: x.ID, Title: x.Title, DailyRentalRate: x.DailyRentalRate}
}

// EmbeddedMovie is the movie snapshot kept in a Rental.
type EmbeddedMovie struct {
	ID              ID      `json:"_id" firestore:"id" bson:"_id"`
	Title           string  `json:"title" firestore:"title" bson:"title"`
	DailyRentalRate float64 `json:"dailyRentalRate" firestore:"daily_rental_rate" bson:"dailyRentalRate"`
}
