package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// ErrProductNotFound is returned by Delete when no row matched.
var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(database *PostgresDB) *ProductRepository {
	return &ProductRepository{db: database.Conn}
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := "SELECT id, name, price, quantity, created_at FROM products ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByID returns nil, nil when the product does not exist.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := "SELECT id, name, price, quantity, created_at FROM products WHERE id = $1"

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	query := `
		INSERT INTO products (name, price, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, name, price, quantity, created_at
	`

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Price, req.Quantity).
		Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SeedIfEmpty inserts the sample catalog when the table has no rows.
// It reports how many rows were inserted.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context) (int, error) {
	samples := []models.CreateProductRequest{
		{Name: "x1", Price: 1.2, Quantity: 2},
		{Name: "x5", Price: 122, Quantity: 2},
		{Name: "x2", Price: 12, Quantity: 25},
		{Name: "x6", Price: 600, Quantity: 2},
	}

	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for _, s := range samples {
		if _, err := r.Create(ctx, s); err != nil {
			return 0, err
		}
	}
	return len(samples), nil
}
