package model

// Customer is a person who rents movies.
type Customer struct {
	ID     ID     `json:"_id" firestore:"id" bson:"_id"`
	Name   string `json:"name" firestore:"name" bson:"name"`
	Phone  string `json:"phone" firestore:"phone" bson:"phone"`
	IsGold bool   `json:"isGold" firestore:"is_gold" bson:"isGold"`
}

// CustomerInput is the client payload for creating or replacing a customer.
type CustomerInput struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	IsGold bool   `json:"isGold"`
}

func (x CustomerInput) Validate() error {
	var c checker
	c.str("name", x.Name, 5, 50)
	if c.str("phone", x.Phone, 5, 50) && !phonePattern.MatchString(x.Phone) {
		c.add("phone", `"phone" must be a valid phone number`)
	}
	return c.result()
}

// Embed returns the denormalized copy stored inside rentals.
func (x *Customer) Embed() EmbeddedCustomer {
	return EmbeddedCustomer{ID: x.ID, Name: x.Name, Phone: x.Phone, IsGold: x.IsGold}
}

// EmbeddedCustomer is the customer snapshot kept in a Rental.
type EmbeddedCustomer struct {
	ID     ID     `json:"_id" firestore:"id" bson:"_id"`
	Name   string `json:"name" firestore:"name" bson:"name"`
	Phone  string `json:"phone" firestore:"phone" bson:"phone"`
	IsGold bool   `json:"isGold" firestore:"is_gold" bson:"isGold"`
}
