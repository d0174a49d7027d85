package model

// User is an account that can authenticate against the API.
type User struct {
	ID           ID     `json:"_id" firestore:"id" bson:"_id"`
	Name         string `json:"name" firestore:"name" bson:"name"`
	Email        string `json:"email" firestore:"email" bson:"email"`
	PasswordHash string `json:"-" firestore:"password_hash" bson:"password" masq:"secret"`
	IsAdmin      bool   `json:"isAdmin" firestore:"is_admin" bson:"isAdmin"`
}

// PublicUser is the subset of a user returned to clients.
type PublicUser struct {
	ID    ID     `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (x *User) Public() PublicUser {
	return PublicUser{ID: x.ID, Name: x.Name, Email: x.Email}
}

// UserInput is the registration payload.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}

func (x UserInput) Validate() error {
	var c checker
	c.str("name", x.Name, 5, 50)
	c.email("email", x.Email)
	c.str("password", x.Password, 5, 255)
	return c.result()
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}

func (x Credentials) Validate() error {
	var c checker
	c.email("email", x.Email)
	if c.str("password", x.Password, 3, 30) && !passwordPattern.MatchString(x.Password) {
		c.add("password", `"password" must only contain alpha-numeric characters`)
	}
	return c.result()
}
