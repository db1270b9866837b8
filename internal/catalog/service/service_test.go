package service

import (
	"context"
	"errors"
	"testing"

	cerrors "github.com/abgdnv/catalog/internal/catalog/errors"
	"github.com/abgdnv/catalog/internal/catalog/store"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
// with per-call hooks and call counters.
type mockProductStore struct {
	findAllFn  func() ([]store.Product, error)
	findByIDFn func(id int64) (*store.Product, error)
	insertFn   func(data store.ProductData) (int64, error)
	updateFn   func(id int64, data store.ProductData) (int64, error)
	deleteFn   func(id int64) (int64, error)

	insertCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	return m.findAllFn()
}

func (m *mockProductStore) FindByID(_ context.Context, id int64) (*store.Product, error) {
	return m.findByIDFn(id)
}

func (m *mockProductStore) Insert(_ context.Context, data store.ProductData) (int64, error) {
	m.insertCalls++
	return m.insertFn(data)
}

func (m *mockProductStore) UpdateByID(_ context.Context, id int64, data store.ProductData) (int64, error) {
	m.updateCalls++
	return m.updateFn(id, data)
}

func (m *mockProductStore) DeleteByID(_ context.Context, id int64) (int64, error) {
	m.deleteCalls++
	return m.deleteFn(id)
}

// mockUserStore is a mock implementation of the UserStore interface.
type mockUserStore struct {
	user          *store.User
	err           error
	findByIDCalls int
}

func (m *mockUserStore) FindByID(_ context.Context, _ int64) (*store.User, error) {
	m.findByIDCalls++
	return m.user, m.err
}

func (m *mockUserStore) FindByName(_ context.Context, _ string) (*store.User, error) {
	return m.user, m.err
}

func (m *mockUserStore) Insert(_ context.Context, _ string, _ *string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.user.ID, nil
}

func liveUser() *mockUserStore {
	return &mockUserStore{user: &store.User{ID: 1, Name: "alice"}}
}

func goneUser() *mockUserStore {
	return &mockUserStore{err: cerrors.ErrUserNotFound}
}

func fptr(v float64) *float64 { return &v }

func validPayload(name string) ProductPayload {
	return ProductPayload{
		Name:        name,
		Description: "sturdy wooden box",
		Height:      fptr(1.5),
		Length:      fptr(2),
		Width:       fptr(0.5),
	}
}

func Test_Service_FindByID(t *testing.T) {
	product := store.Product{ID: 7, Name: "Crate", Description: "sturdy wooden box", Height: 1, Length: 2, Width: 3}

	testCases := []struct {
		name        string
		users       *mockUserStore
		products    *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name:  "Success - product found",
			users: liveUser(),
			products: &mockProductStore{
				findByIDFn: func(_ int64) (*store.Product, error) { return &product, nil },
			},
			expected: &ProductDto{ID: 7, Name: "Crate", Description: "sturdy wooden box", Height: 1, Length: 2, Width: 3},
		},
		{
			name:  "Error - product not found",
			users: liveUser(),
			products: &mockProductStore{
				findByIDFn: func(_ int64) (*store.Product, error) { return nil, cerrors.ErrProductNotFound },
			},
			expectError: cerrors.ErrProductNotFound,
		},
		{
			name:        "Error - user no longer exists",
			users:       goneUser(),
			products:    &mockProductStore{},
			expectError: cerrors.ErrInvalidUser,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := NewService(tc.products, tc.users)
			// when
			found, err := svc.FindByID(context.Background(), 1, 7)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_Service_Create(t *testing.T) {
	t.Run("Success - product created with generated id", func(t *testing.T) {
		// given
		products := &mockProductStore{
			insertFn: func(_ store.ProductData) (int64, error) { return 11, nil },
		}
		svc := NewService(products, liveUser())
		// when
		created, err := svc.Create(context.Background(), 1, validPayload("Crate"))
		// then
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, "Crate", created.Name)
		assert.Equal(t, 1, products.insertCalls)
	})

	t.Run("Error - invalid payload, no store call", func(t *testing.T) {
		products := &mockProductStore{}
		svc := NewService(products, liveUser())

		created, err := svc.Create(context.Background(), 1, ProductPayload{Name: "x"})

		var validationErr *web.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Nil(t, created)
		assert.Zero(t, products.insertCalls)
	})

	t.Run("Error - user no longer exists, no store call", func(t *testing.T) {
		products := &mockProductStore{}
		svc := NewService(products, goneUser())

		created, err := svc.Create(context.Background(), 1, validPayload("Crate"))

		assert.ErrorIs(t, err, cerrors.ErrInvalidUser)
		assert.Nil(t, created)
		assert.Zero(t, products.insertCalls)
	})

	t.Run("Error - user store fault is not an invalid user", func(t *testing.T) {
		storeFault := errors.New("connection refused")
		svc := NewService(&mockProductStore{}, &mockUserStore{err: storeFault})

		_, err := svc.Create(context.Background(), 1, validPayload("Crate"))

		assert.ErrorIs(t, err, storeFault)
		assert.NotErrorIs(t, err, cerrors.ErrInvalidUser)
	})
}

func Test_Service_Update(t *testing.T) {
	t.Run("Success - response echoes submitted values", func(t *testing.T) {
		// given
		products := &mockProductStore{
			updateFn: func(_ int64, _ store.ProductData) (int64, error) { return 1, nil },
		}
		svc := NewService(products, liveUser())
		// when
		updated, err := svc.Update(context.Background(), 1, 7, validPayload("Crate v2"))
		// then
		require.NoError(t, err)
		assert.Equal(t, int64(7), updated.ID)
		assert.Equal(t, "Crate v2", updated.Name)
	})

	t.Run("Error - zero affected rows means not found", func(t *testing.T) {
		products := &mockProductStore{
			updateFn: func(_ int64, _ store.ProductData) (int64, error) { return 0, nil },
		}
		svc := NewService(products, liveUser())

		updated, err := svc.Update(context.Background(), 1, 7, validPayload("Crate"))

		assert.ErrorIs(t, err, cerrors.ErrProductNotFound)
		assert.Nil(t, updated)
	})
}

func Test_Service_DeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		affected    int64
		storeErr    error
		expectError error
	}{
		{name: "Success - one row deleted", affected: 1},
		{name: "Error - zero affected rows means not found", affected: 0, expectError: cerrors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			products := &mockProductStore{
				deleteFn: func(_ int64) (int64, error) { return tc.affected, tc.storeErr },
			}
			svc := NewService(products, liveUser())

			err := svc.DeleteByID(context.Background(), 1, 7)

			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}
