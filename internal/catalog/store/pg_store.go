package store

import (
	"context"
	"errors"
	"fmt"

	cerrors "github.com/abgdnv/catalog/internal/catalog/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// PgProductStore implements ProductStore using PostgreSQL.
type PgProductStore struct {
	db *pgxpool.Pool
}

// NewPgProductStore creates a product store backed by a PostgreSQL connection pool.
func NewPgProductStore(db *pgxpool.Pool) *PgProductStore {
	return &PgProductStore{db: db}
}

// FindAll returns all products, ordered by id.
func (p *PgProductStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, name, description, height, length, width FROM catalog_products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var pr Product
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Description, &pr.Height, &pr.Length, &pr.Width); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgProductStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	var pr Product
	err := p.db.QueryRow(ctx,
		`SELECT id, name, description, height, length, width FROM catalog_products WHERE id = $1`, id).
		Scan(&pr.ID, &pr.Name, &pr.Description, &pr.Height, &pr.Length, &pr.Width)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &pr, nil
}

// Insert adds a new product and returns its generated id.
func (p *PgProductStore) Insert(ctx context.Context, data ProductData) (int64, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO catalog_products (name, description, height, length, width)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		data.Name, data.Description, data.Height, data.Length, data.Width).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return id, nil
}

// UpdateByID overwrites a product's fields and returns the affected row count.
func (p *PgProductStore) UpdateByID(ctx context.Context, id int64, data ProductData) (int64, error) {
	tag, err := p.db.Exec(ctx,
		`UPDATE catalog_products SET name = $1, description = $2, height = $3, length = $4, width = $5
		 WHERE id = $6`,
		data.Name, data.Description, data.Height, data.Length, data.Width, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update product: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByID removes a product and returns the affected row count.
func (p *PgProductStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM catalog_products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PgUserStore implements UserStore using PostgreSQL.
type PgUserStore struct {
	db *pgxpool.Pool
}

// NewPgUserStore creates a user store backed by a PostgreSQL connection pool.
func NewPgUserStore(db *pgxpool.Pool) *PgUserStore {
	return &PgUserStore{db: db}
}

// FindByID retrieves a user by id.
// Returns ErrUserNotFound if no user exists with the given ID.
func (u *PgUserStore) FindByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := u.db.QueryRow(ctx, `SELECT id, name, img_profile FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Name, &user.ImgProfile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return &user, nil
}

// FindByName retrieves a user by name.
// Returns ErrUserNotFound if no user exists with the given name.
func (u *PgUserStore) FindByName(ctx context.Context, name string) (*User, error) {
	var user User
	err := u.db.QueryRow(ctx, `SELECT id, name, img_profile FROM users WHERE name = $1`, name).
		Scan(&user.ID, &user.Name, &user.ImgProfile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by name: %w", err)
	}
	return &user, nil
}

// Insert adds a new user and returns its generated id.
// Returns ErrUserAlreadyExists if the name is already taken.
func (u *PgUserStore) Insert(ctx context.Context, name string, imgProfile *string) (int64, error) {
	var id int64
	err := u.db.QueryRow(ctx,
		`INSERT INTO users (name, img_profile) VALUES ($1, $2) RETURNING id`, name, imgProfile).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, cerrors.ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}
