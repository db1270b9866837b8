// Package rest provides the HTTP handlers for the catalog service.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	cerrors "github.com/abgdnv/catalog/internal/catalog/errors"
	"github.com/abgdnv/catalog/internal/catalog/service"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// batchCompletedMessage is the envelope message for every multi-status
// batch response, regardless of the per-item outcomes.
const batchCompletedMessage = "Batch process completed"

// Handler serves the product endpoints.
type Handler struct {
	service service.CatalogService
	logger  *slog.Logger
}

// NewHandler creates a product handler with the provided service.
func NewHandler(service service.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the product routes. The caller is expected to
// mount them behind the auth middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Post("/batch", h.CreateBatch)
		r.Patch("/update/batch", h.UpdateBatch)
		r.Delete("/delete/batch", h.DeleteBatch)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Patch("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindAll retrieves the full product list.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	list, err := h.service.FindAll(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while getting the products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindByID(r.Context(), userID, id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while getting the product by id")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a single product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	var payload service.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.service.Create(r.Context(), userID, payload)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while creating the product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update overwrites an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var payload service.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.service.Update(r.Context(), userID, id, payload)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while updating the product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.service.DeleteByID(r.Context(), userID, id); err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while deleting the product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// CreateBatch creates a batch of products, aggregating per-item outcomes
// into a multi-status response.
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	var items []service.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Request body must be an array of products")
		return
	}
	result, err := h.service.CreateBatch(r.Context(), userID, items)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while creating the products")
		return
	}
	mLogger.InfoContext(r.Context(), "Create batch processed", "success", len(result.Success), "failed", len(result.Failed))
	web.RespondJSON(w, mLogger, http.StatusMultiStatus, map[string]any{
		"message": batchCompletedMessage,
		"results": result,
	})
}

// UpdateBatch updates a batch of products, aggregating per-item outcomes
// into a multi-status response.
func (h *Handler) UpdateBatch(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	var items []service.ProductUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Request body must be an array of products")
		return
	}
	result, err := h.service.UpdateBatch(r.Context(), userID, items)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while updating the products")
		return
	}
	mLogger.InfoContext(r.Context(), "Update batch processed", "success", len(result.Success), "failed", len(result.Failed))
	web.RespondJSON(w, mLogger, http.StatusMultiStatus, map[string]any{
		"message": batchCompletedMessage,
		"results": result,
	})
}

// DeleteBatch deletes the products named by the ids list, aggregating
// per-id outcomes into a multi-status response.
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.service.DeleteBatch(r.Context(), userID, body.IDs)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "An error occurred while deleting the products")
		return
	}
	mLogger.InfoContext(r.Context(), "Delete batch processed", "success", len(result.Success), "failed", len(result.Failed))
	web.RespondJSON(w, mLogger, http.StatusMultiStatus, map[string]any{
		"message": batchCompletedMessage,
		"results": result,
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondServiceError maps service errors onto the HTTP error contract.
// Anything unclassified is logged and surfaced as a generic 500 body.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, fallback string) {
	var validationErr *web.ValidationError
	switch {
	case errors.Is(err, cerrors.ErrInvalidUser):
		mLogger.WarnContext(r.Context(), "Token user no longer exists")
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid user id")
	case errors.Is(err, cerrors.ErrProductNotFound):
		web.RespondMessage(w, mLogger, http.StatusNotFound, "Product not found")
	case errors.Is(err, cerrors.ErrNoProductIDs):
		web.RespondError(w, mLogger, http.StatusBadRequest, "No product ids provided")
	case errors.As(err, &validationErr):
		web.RespondError(w, mLogger, http.StatusBadRequest, validationErr.Error())
	default:
		mLogger.ErrorContext(r.Context(), "Request failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fallback)
	}
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
