// Package service implements the catalog business logic: payload validation,
// single-item CRUD and the partial-failure-tolerant batch operations.
package service

import (
	"context"
	"errors"
	"fmt"

	cerrors "github.com/abgdnv/catalog/internal/catalog/errors"
	"github.com/abgdnv/catalog/internal/catalog/store"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-playground/validator/v10"
)

// CatalogService defines the catalog operations. Every method takes the
// calling user's id and confirms it still resolves to a live user row before
// touching the catalog; a valid token alone is not enough.
type CatalogService interface {
	// FindAll returns all products.
	FindAll(ctx context.Context, userID int64) ([]ProductDto, error)

	// FindByID retrieves a single product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, userID, id int64) (*ProductDto, error)

	// Create validates and persists a new product, returning it with its
	// generated id.
	Create(ctx context.Context, userID int64, payload ProductPayload) (*ProductDto, error)

	// Update validates and overwrites an existing product. The returned
	// product echoes the submitted values, it is not re-read from the store.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, userID, id int64, payload ProductPayload) (*ProductDto, error)

	// DeleteByID removes a product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, userID, id int64) error

	// CreateBatch persists each valid item, collecting one outcome per input
	// item. A single item's failure never aborts the rest of the batch.
	CreateBatch(ctx context.Context, userID int64, items []ProductPayload) (*CreateBatchResult, error)

	// UpdateBatch overwrites each targeted product, collecting one outcome
	// per input item.
	UpdateBatch(ctx context.Context, userID int64, items []ProductUpdatePayload) (*UpdateBatchResult, error)

	// DeleteBatch removes each targeted product, collecting one outcome per
	// input id. Returns ErrNoProductIDs when ids is empty.
	DeleteBatch(ctx context.Context, userID int64, ids []int64) (*DeleteBatchResult, error)
}

// ProductPayload is a candidate product as submitted by the client. The
// dimensions are pointers so that an absent field is distinguishable from a
// zero value. Field order fixes which violation is reported first.
type ProductPayload struct {
	Name        string   `json:"name"        validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=5"`
	Height      *float64 `json:"height"      validate:"required,gt=0"`
	Length      *float64 `json:"length"      validate:"required,gt=0"`
	Width       *float64 `json:"width"       validate:"required,gt=0"`
}

// ProductUpdatePayload is a batch update item: a product payload plus the id
// of the row to overwrite.
type ProductUpdatePayload struct {
	ID int64 `json:"id"`
	ProductPayload
}

// ProductDto is a product as returned to the client.
type ProductDto struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Height      float64 `json:"height"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
}

// Service implements CatalogService over the product and user stores.
type Service struct {
	products store.ProductStore
	users    store.UserStore
	validate *validator.Validate
}

// NewService creates a catalog service over the given stores.
func NewService(products store.ProductStore, users store.UserStore) *Service {
	return &Service{
		products: products,
		users:    users,
		validate: web.NewValidator(),
	}
}

// FindAll returns all products.
func (s *Service) FindAll(ctx context.Context, userID int64) ([]ProductDto, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = ProductDto{ID: p.ID, Name: p.Name, Description: p.Description, Height: p.Height, Length: p.Length, Width: p.Width}
	}
	return dtos, nil
}

// FindByID retrieves a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, userID, id int64) (*ProductDto, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return &ProductDto{ID: p.ID, Name: p.Name, Description: p.Description, Height: p.Height, Length: p.Length, Width: p.Width}, nil
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, userID int64, payload ProductPayload) (*ProductDto, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}
	id, err := s.products.Insert(ctx, toData(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(id, payload), nil
}

// Update validates and overwrites an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, userID, id int64, payload ProductPayload) (*ProductDto, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}
	affected, err := s.products.UpdateByID(ctx, id, toData(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	if affected == 0 {
		return nil, cerrors.ErrProductNotFound
	}
	return toDto(id, payload), nil
}

// DeleteByID removes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, userID, id int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	affected, err := s.products.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	if affected == 0 {
		return cerrors.ErrProductNotFound
	}
	return nil
}

// requireUser confirms the caller still resolves to a live user row.
// Returns ErrInvalidUser when the row is gone.
func (s *Service) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, cerrors.ErrUserNotFound) {
			return cerrors.ErrInvalidUser
		}
		return fmt.Errorf("failed to resolve user %d: %w", userID, err)
	}
	return nil
}

// validatePayload schema-checks a product payload, reporting the first
// violation only. The same rules apply to single-item and batch items.
func (s *Service) validatePayload(payload ProductPayload) error {
	if err := s.validate.Struct(payload); err != nil {
		return web.NewValidationError(web.FirstViolation(err))
	}
	return nil
}

func toData(p ProductPayload) store.ProductData {
	return store.ProductData{
		Name:        p.Name,
		Description: p.Description,
		Height:      *p.Height,
		Length:      *p.Length,
		Width:       *p.Width,
	}
}

func toDto(id int64, p ProductPayload) *ProductDto {
	return &ProductDto{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Height:      *p.Height,
		Length:      *p.Length,
		Width:       *p.Width,
	}
}
