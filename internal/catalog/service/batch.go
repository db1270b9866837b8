package service

import (
	"context"
	"fmt"

	cerrors "github.com/abgdnv/catalog/internal/catalog/errors"
)

// FailedProduct is a per-item failure outcome carrying the original item.
type FailedProduct struct {
	Product ProductPayload `json:"product"`
	Error   string         `json:"error"`
}

// FailedUpdate is a per-item failure outcome for an update batch.
type FailedUpdate struct {
	Product ProductUpdatePayload `json:"product"`
	Error   string               `json:"error"`
}

// DeletedID is a per-id success outcome for a delete batch.
type DeletedID struct {
	ID int64 `json:"id"`
}

// FailedDelete is a per-id failure outcome for a delete batch.
type FailedDelete struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// CreateBatchResult aggregates the outcomes of a create batch. Every input
// item lands in exactly one of the two lists.
type CreateBatchResult struct {
	Success []ProductDto    `json:"success"`
	Failed  []FailedProduct `json:"failed"`
}

// UpdateBatchResult aggregates the outcomes of an update batch.
type UpdateBatchResult struct {
	Success []ProductDto   `json:"success"`
	Failed  []FailedUpdate `json:"failed"`
}

// DeleteBatchResult aggregates the outcomes of a delete batch.
type DeleteBatchResult struct {
	Success []DeletedID    `json:"success"`
	Failed  []FailedDelete `json:"failed"`
}

// CreateBatch validates and persists each item in input order. An invalid
// item is recorded as a failure without a store call; a store error on one
// item is recorded and iteration continues with the next item.
func (s *Service) CreateBatch(ctx context.Context, userID int64, items []ProductPayload) (*CreateBatchResult, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	result := &CreateBatchResult{Success: []ProductDto{}, Failed: []FailedProduct{}}
	for _, item := range items {
		if err := s.validatePayload(item); err != nil {
			result.Failed = append(result.Failed, FailedProduct{Product: item, Error: err.Error()})
			continue
		}
		id, err := s.products.Insert(ctx, toData(item))
		if err != nil {
			result.Failed = append(result.Failed, FailedProduct{Product: item, Error: err.Error()})
			continue
		}
		result.Success = append(result.Success, *toDto(id, item))
	}
	return result, nil
}

// UpdateBatch validates and overwrites each targeted product in input order.
// A zero affected-row count means the target id does not exist and is
// recorded as a "not found" failure, distinct from a store error.
func (s *Service) UpdateBatch(ctx context.Context, userID int64, items []ProductUpdatePayload) (*UpdateBatchResult, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	result := &UpdateBatchResult{Success: []ProductDto{}, Failed: []FailedUpdate{}}
	for _, item := range items {
		if err := s.validatePayload(item.ProductPayload); err != nil {
			result.Failed = append(result.Failed, FailedUpdate{Product: item, Error: err.Error()})
			continue
		}
		affected, err := s.products.UpdateByID(ctx, item.ID, toData(item.ProductPayload))
		if err != nil {
			result.Failed = append(result.Failed, FailedUpdate{Product: item, Error: err.Error()})
			continue
		}
		if affected == 0 {
			result.Failed = append(result.Failed, FailedUpdate{Product: item, Error: fmt.Sprintf("Product with id %d not found", item.ID)})
			continue
		}
		// The response reflects the submitted values, not a re-read row.
		result.Success = append(result.Success, *toDto(item.ID, item.ProductPayload))
	}
	return result, nil
}

// DeleteBatch removes each targeted product in input order.
// Returns ErrNoProductIDs when ids is empty; per-id failures never abort the
// rest of the batch.
func (s *Service) DeleteBatch(ctx context.Context, userID int64, ids []int64) (*DeleteBatchResult, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, cerrors.ErrNoProductIDs
	}
	result := &DeleteBatchResult{Success: []DeletedID{}, Failed: []FailedDelete{}}
	for _, id := range ids {
		affected, err := s.products.DeleteByID(ctx, id)
		if err != nil {
			result.Failed = append(result.Failed, FailedDelete{ID: id, Error: err.Error()})
			continue
		}
		if affected == 0 {
			result.Failed = append(result.Failed, FailedDelete{ID: id, Error: fmt.Sprintf("Product with id %d not found", id)})
			continue
		}
		result.Success = append(result.Success, DeletedID{ID: id})
	}
	return result, nil
}
