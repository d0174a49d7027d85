package interfaces

import "github.com/m-mizutani/goerr/v2"

// Errors returned by every Repository implementation.
var (
	ErrNotFound   = goerr.New("not found")
	ErrConflict   = goerr.New("conflict")
	ErrOutOfStock = goerr.New("out of stock")

	ErrAlreadyReturned = goerr.New("rental already returned")
)
