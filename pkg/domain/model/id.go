package model

import (
	"github.com/m-mizutani/goerr/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID identifies a stored document. It is the 24 character hex form of a
// MongoDB ObjectID for every backend, so IDs are portable between stores and
// sort roughly by creation time.
type ID string

var ErrInvalidID = goerr.New("invalid ID")

// NewID returns a fresh ID
func NewID() ID {
	return ID(primitive.NewObjectID().Hex())
}

// ParseID validates s and converts it into an ID
func ParseID(s string) (ID, error) {
	id := ID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks that the ID is a well-formed ObjectID hex string
func (x ID) Validate() error {
	if _, err := primitive.ObjectIDFromHex(string(x)); err != nil {
		return goerr.Wrap(ErrInvalidID, "malformed ID", goerr.V(IDKey, string(x)))
	}
	return nil
}

// ObjectID converts the ID into its binary form. It returns NilObjectID for
// malformed IDs.
func (x ID) ObjectID() primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(string(x))
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

func (x ID) String() string { return string(x) }
