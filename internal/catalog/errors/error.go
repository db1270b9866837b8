// Package errors provides sentinel errors for catalog and account operations.
package errors

import "errors"

var (
	// ErrProductNotFound means the targeted product row does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrUserNotFound means no user row matches the given id or name.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists means a user with the same name is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidUser means the token was valid but its user id no longer
	// resolves to a live user row.
	ErrInvalidUser = errors.New("invalid user id")

	// ErrNoProductIDs means a delete batch carried no ids.
	ErrNoProductIDs = errors.New("no product ids provided")
)
