package model

import (
	"fmt"
)

// Fixtures is a batch of documents loaded by the seed command.
type Fixtures struct {
	Genres    []GenreInput    `toml:"genres"`
	Movies    []MovieFixture  `toml:"movies"`
	Customers []CustomerInput `toml:"customers"`
	Users     []UserFixture   `toml:"users"`
}

// MovieFixture references its genre by name instead of ID.
type MovieFixture struct {
	Title           string  `toml:"title"`
	Genre           string  `toml:"genre"`
	NumberInStock   float64 `toml:"numberInStock"`
	DailyRentalRate float64 `toml:"dailyRentalRate"`
}

// UserFixture may create administrators, which registration cannot.
type UserFixture struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Password string `toml:"password" masq:"secret"`
	IsAdmin  bool   `toml:"isAdmin"`
}

// Validate checks every entry and cross references. Field errors are
// prefixed with the entry they belong to.
func (x *Fixtures) Validate() error {
	var c checker
	prefix := func(kind string, i int, err error) {
		if err == nil {
			return
		}
		if verr, ok := err.(ValidationErrors); ok {
			for _, e := range verr {
				c.add(fmt.Sprintf("%s[%d].%s", kind, i, e.Field), "%s[%d]: %s", kind, i, e.Message)
			}
		}
	}

	genres := make(map[string]struct{}, len(x.Genres))
	for i, g := range x.Genres {
		prefix("genres", i, g.Validate())
		if _, dup := genres[g.Name]; dup {
			c.add(fmt.Sprintf("genres[%d].name", i), "genres[%d]: duplicate genre %q", i, g.Name)
		}
		genres[g.Name] = struct{}{}
	}

	for i, m := range x.Movies {
		input := MovieInput{
			Title:           m.Title,
			GenreID:         NewID(),
			NumberInStock:   &m.NumberInStock,
			DailyRentalRate: &m.DailyRentalRate,
		}
		prefix("movies", i, input.Validate())
		if _, ok := genres[m.Genre]; !ok {
			c.add(fmt.Sprintf("movies[%d].genre", i), "movies[%d]: unknown genre %q", i, m.Genre)
		}
	}

	for i, cu := range x.Customers {
		prefix("customers", i, cu.Validate())
	}

	emails := make(map[string]struct{}, len(x.Users))
	for i, u := range x.Users {
		prefix("users", i, UserInput{Name: u.Name, Email: u.Email, Password: u.Password}.Validate())
		if _, dup := emails[u.Email]; dup {
			c.add(fmt.Sprintf("users[%d].email", i), "users[%d]: duplicate email %q", i, u.Email)
		}
		emails[u.Email] = struct{}{}
	}

	return c.result()
}
