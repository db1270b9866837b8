package service

import (
	"context"
	"errors"
	"testing"

	cerrors "github.com/abgdnv/catalog/internal/catalog/errors"
	"github.com/abgdnv/catalog/internal/catalog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Service_CreateBatch(t *testing.T) {
	t.Run("Mixed outcomes - invalid item is skipped, valid items are persisted", func(t *testing.T) {
		// given
		nextID := int64(100)
		products := &mockProductStore{
			insertFn: func(_ store.ProductData) (int64, error) {
				nextID++
				return nextID, nil
			},
		}
		svc := NewService(products, liveUser())
		items := []ProductPayload{
			validPayload("Crate A"),
			{Name: "x"}, // name too short
			validPayload("Crate B"),
		}
		// when
		result, err := svc.CreateBatch(context.Background(), 1, items)
		// then
		require.NoError(t, err)
		assert.Len(t, result.Success, 2)
		assert.Len(t, result.Failed, 1)
		assert.Len(t, items, len(result.Success)+len(result.Failed), "every input item yields exactly one outcome")

		assert.Equal(t, int64(101), result.Success[0].ID)
		assert.Equal(t, "Crate A", result.Success[0].Name)
		assert.Equal(t, int64(102), result.Success[1].ID)
		assert.Equal(t, "Crate B", result.Success[1].Name)

		assert.Equal(t, "x", result.Failed[0].Product.Name)
		assert.Equal(t, `"name" length must be at least 3 characters long`, result.Failed[0].Error)

		// the invalid item must not reach the store
		assert.Equal(t, 2, products.insertCalls)
	})

	t.Run("Store error on one item does not abort the rest", func(t *testing.T) {
		calls := 0
		products := &mockProductStore{
			insertFn: func(_ store.ProductData) (int64, error) {
				calls++
				if calls == 1 {
					return 0, errors.New("deadlock detected")
				}
				return 7, nil
			},
		}
		svc := NewService(products, liveUser())

		result, err := svc.CreateBatch(context.Background(), 1, []ProductPayload{
			validPayload("Crate A"),
			validPayload("Crate B"),
		})

		require.NoError(t, err)
		assert.Len(t, result.Success, 1)
		assert.Len(t, result.Failed, 1)
		assert.Contains(t, result.Failed[0].Error, "deadlock detected")
	})

	t.Run("Invalid user aborts the whole batch before any item", func(t *testing.T) {
		products := &mockProductStore{}
		svc := NewService(products, goneUser())

		result, err := svc.CreateBatch(context.Background(), 1, []ProductPayload{validPayload("Crate A")})

		assert.ErrorIs(t, err, cerrors.ErrInvalidUser)
		assert.Nil(t, result)
		assert.Zero(t, products.insertCalls)
	})

	t.Run("Empty batch still returns both lists", func(t *testing.T) {
		svc := NewService(&mockProductStore{}, liveUser())

		result, err := svc.CreateBatch(context.Background(), 1, nil)

		require.NoError(t, err)
		assert.NotNil(t, result.Success)
		assert.NotNil(t, result.Failed)
		assert.Empty(t, result.Success)
		assert.Empty(t, result.Failed)
	})
}

func Test_Service_UpdateBatch(t *testing.T) {
	t.Run("Zero affected rows is a not-found failure, not a fault", func(t *testing.T) {
		// given
		products := &mockProductStore{
			updateFn: func(id int64, _ store.ProductData) (int64, error) {
				if id == 999 {
					return 0, nil
				}
				return 1, nil
			},
		}
		svc := NewService(products, liveUser())
		items := []ProductUpdatePayload{
			{ID: 5, ProductPayload: validPayload("Crate A")},
			{ID: 999, ProductPayload: validPayload("Crate B")},
		}
		// when
		result, err := svc.UpdateBatch(context.Background(), 1, items)
		// then
		require.NoError(t, err)
		assert.Len(t, result.Success, 1)
		assert.Len(t, result.Failed, 1)

		// the response reflects the submitted values and id
		assert.Equal(t, int64(5), result.Success[0].ID)
		assert.Equal(t, "Crate A", result.Success[0].Name)

		assert.Equal(t, int64(999), result.Failed[0].Product.ID)
		assert.Equal(t, "Product with id 999 not found", result.Failed[0].Error)
	})

	t.Run("Validation failure skips the store call for that item only", func(t *testing.T) {
		products := &mockProductStore{
			updateFn: func(_ int64, _ store.ProductData) (int64, error) { return 1, nil },
		}
		svc := NewService(products, liveUser())
		items := []ProductUpdatePayload{
			{ID: 5, ProductPayload: ProductPayload{Name: "ok name", Description: "bad"}},
			{ID: 6, ProductPayload: validPayload("Crate B")},
		}

		result, err := svc.UpdateBatch(context.Background(), 1, items)

		require.NoError(t, err)
		assert.Len(t, result.Success, 1)
		assert.Len(t, result.Failed, 1)
		assert.Equal(t, `"description" length must be at least 5 characters long`, result.Failed[0].Error)
		assert.Equal(t, 1, products.updateCalls)
	})

	t.Run("Invalid user aborts the whole batch", func(t *testing.T) {
		products := &mockProductStore{}
		svc := NewService(products, goneUser())

		result, err := svc.UpdateBatch(context.Background(), 1, []ProductUpdatePayload{{ID: 5, ProductPayload: validPayload("Crate")}})

		assert.ErrorIs(t, err, cerrors.ErrInvalidUser)
		assert.Nil(t, result)
		assert.Zero(t, products.updateCalls)
	})
}

func Test_Service_DeleteBatch(t *testing.T) {
	t.Run("Mixed outcomes - existing and missing ids", func(t *testing.T) {
		// given
		products := &mockProductStore{
			deleteFn: func(id int64) (int64, error) {
				if id == 5 {
					return 1, nil
				}
				return 0, nil
			},
		}
		svc := NewService(products, liveUser())
		// when
		result, err := svc.DeleteBatch(context.Background(), 1, []int64{5, 999})
		// then
		require.NoError(t, err)
		assert.Equal(t, []DeletedID{{ID: 5}}, result.Success)
		assert.Equal(t, []FailedDelete{{ID: 999, Error: "Product with id 999 not found"}}, result.Failed)
	})

	t.Run("Store error on one id does not abort the rest", func(t *testing.T) {
		products := &mockProductStore{
			deleteFn: func(id int64) (int64, error) {
				if id == 5 {
					return 0, errors.New("connection reset")
				}
				return 1, nil
			},
		}
		svc := NewService(products, liveUser())

		result, err := svc.DeleteBatch(context.Background(), 1, []int64{5, 6})

		require.NoError(t, err)
		assert.Len(t, result.Success, 1)
		assert.Len(t, result.Failed, 1)
		assert.Contains(t, result.Failed[0].Error, "connection reset")
		assert.Equal(t, 2, products.deleteCalls)
	})

	t.Run("Empty ids list rejects the whole batch", func(t *testing.T) {
		products := &mockProductStore{}
		svc := NewService(products, liveUser())

		result, err := svc.DeleteBatch(context.Background(), 1, nil)

		assert.ErrorIs(t, err, cerrors.ErrNoProductIDs)
		assert.Nil(t, result)
		assert.Zero(t, products.deleteCalls)
	})

	t.Run("Invalid user aborts before the ids precondition", func(t *testing.T) {
		users := goneUser()
		svc := NewService(&mockProductStore{}, users)

		_, err := svc.DeleteBatch(context.Background(), 1, nil)

		assert.ErrorIs(t, err, cerrors.ErrInvalidUser)
		assert.Equal(t, 1, users.findByIDCalls)
	})
}
