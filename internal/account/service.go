// Package account provides login and signup business logic.
package account

import (
	"context"
	"fmt"

	"github.com/abgdnv/catalog/internal/catalog/store"
	"github.com/abgdnv/catalog/pkg/auth"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-playground/validator/v10"
)

// LoginDto is the login request payload.
type LoginDto struct {
	Name string `json:"name" validate:"required,min=3,max=255"`
}

// SignupDto is the signup request payload.
type SignupDto struct {
	Name       string  `json:"name"        validate:"required,min=3,max=255"`
	ImgProfile *string `json:"img_profile" validate:"omitempty,uri"`
}

// Service implements account operations over the user store.
type Service struct {
	users    store.UserStore
	tokens   auth.Issuer
	validate *validator.Validate
}

// NewService creates an account service with the provided user store and
// token issuer.
func NewService(users store.UserStore, tokens auth.Issuer) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		validate: web.NewValidator(),
	}
}

// Login resolves the name to an existing user and issues an access token.
// Returns ErrUserNotFound when the name is unknown.
func (s *Service) Login(ctx context.Context, dto LoginDto) (string, error) {
	if err := s.validate.Struct(dto); err != nil {
		return "", web.NewValidationError(web.FirstViolation(err))
	}
	user, err := s.users.FindByName(ctx, dto.Name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user by name: %w", err)
	}
	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Signup registers a new user and returns its generated id.
// Returns ErrUserAlreadyExists when the name is taken.
func (s *Service) Signup(ctx context.Context, dto SignupDto) (int64, error) {
	if err := s.validate.Struct(dto); err != nil {
		return 0, web.NewValidationError(web.FirstViolation(err))
	}
	id, err := s.users.Insert(ctx, dto.Name, dto.ImgProfile)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}
