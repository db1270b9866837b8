// Package store provides the persistence boundary for users and products.
package store

import "context"

// Product is a catalog row.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Height      float64 `json:"height"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
}

// ProductData carries the mutable fields of a product for insert and update.
type ProductData struct {
	Name        string
	Description string
	Height      float64
	Length      float64
	Width       float64
}

// User is a registered account row.
type User struct {
	ID         int64
	Name       string
	ImgProfile *string
}

// ProductStore is the catalog persistence boundary. Mutations report raw
// affected-row counts; interpreting a zero count as "not found" versus a
// returned error as an infrastructure fault is the caller's job.
type ProductStore interface {
	// FindAll returns all products, ordered by id.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves a single product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Insert adds a new product and returns its generated id.
	Insert(ctx context.Context, data ProductData) (int64, error)

	// UpdateByID overwrites a product's fields and returns the affected row count.
	UpdateByID(ctx context.Context, id int64, data ProductData) (int64, error)

	// DeleteByID removes a product and returns the affected row count.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// UserStore is the account persistence boundary.
type UserStore interface {
	// FindByID retrieves a user by id.
	// Returns ErrUserNotFound if no user exists with the given ID.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByName retrieves a user by name.
	// Returns ErrUserNotFound if no user exists with the given name.
	FindByName(ctx context.Context, name string) (*User, error)

	// Insert adds a new user and returns its generated id.
	// Returns ErrUserAlreadyExists if the name is already taken.
	Insert(ctx context.Context, name string, imgProfile *string) (int64, error)
}
