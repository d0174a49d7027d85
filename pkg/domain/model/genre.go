package model

// Genre is a movie category.
type Genre struct {
	ID   ID     `json:"_id" firestore:"id" bson:"_id"`
	Name string `json:"name" firestore:"name" bson:"name"`
}

// GenreInput is the client payload for creating or replacing a genre.
type GenreInput struct {
	Name string `json:"name"`
}

func (x GenreInput) Validate() error {
	var c checker
	c.str("name", x.Name, 3, 50)
	return c.result()
}

// Embed returns the denormalized copy stored inside movies.
func (x *Genre) Embed() EmbeddedGenre {
	return EmbeddedGenre{ID: x.ID, Name: x.Name}
}

// EmbeddedGenre is the genre snapshot kept in a Movie.
type EmbeddedGenre struct {
	ID   ID     `json:"_id" firestore:"id" bson:"_id"`
	Name string `json:"name" firestore:"name" bson:"name"`
}
