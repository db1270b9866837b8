package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/account"
	cerrors "github.com/abgdnv/catalog/internal/catalog/errors"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AuthHandler serves the unauthenticated login and signup endpoints.
type AuthHandler struct {
	accounts *account.Service
	logger   *slog.Logger
}

// NewAuthHandler creates an auth handler with the provided account service.
func NewAuthHandler(accounts *account.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the login and signup routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/signup", h.Signup)
}

// Login authenticates a user by name and returns a signed access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto account.LoginDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	token, err := h.accounts.Login(r.Context(), dto)
	if err != nil {
		var validationErr *web.ValidationError
		switch {
		case errors.Is(err, cerrors.ErrUserNotFound):
			web.RespondError(w, mLogger, http.StatusBadRequest, "Name not found")
		case errors.As(err, &validationErr):
			web.RespondError(w, mLogger, http.StatusBadRequest, validationErr.Error())
		default:
			mLogger.ErrorContext(r.Context(), "Login failed", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "An error occurred during login")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "User logged in", "name", dto.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Logged in successfully",
		"token":   token,
	})
}

// Signup registers a new user.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto account.SignupDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	userID, err := h.accounts.Signup(r.Context(), dto)
	if err != nil {
		var validationErr *web.ValidationError
		switch {
		case errors.Is(err, cerrors.ErrUserAlreadyExists):
			web.RespondError(w, mLogger, http.StatusBadRequest, "User already exists")
		case errors.As(err, &validationErr):
			web.RespondError(w, mLogger, http.StatusBadRequest, validationErr.Error())
		default:
			mLogger.ErrorContext(r.Context(), "Signup failed", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "An error occurred during signup")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "User created", "name", dto.Name, "userId", userID)
	web.RespondJSON(w, mLogger, http.StatusCreated, map[string]any{
		"status":  "ok",
		"message": "User created successfully",
		"userId":  userID,
	})
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *AuthHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
