package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(database *PostgresDB) *CustomerRepository {
	return &CustomerRepository{db: database.Conn}
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, email FROM customers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// GetByID returns nil, nil when the customer does not exist.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRowContext(ctx, "SELECT id, name, email FROM customers WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	query := `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email
	`

	var c models.Customer
	if err := r.db.QueryRowContext(ctx, query, req.Name, req.Email).Scan(&c.ID, &c.Name, &c.Email); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &c, nil
}

// SeedIfEmpty inserts the sample customers when the table has no rows.
func (r *CustomerRepository) SeedIfEmpty(ctx context.Context) (int, error) {
	samples := []models.CreateCustomerRequest{
		{Name: "John Doe", Email: "m@gm.com"},
		{Name: "Imen", Email: "m1@gm.com"},
		{Name: "Yassin", Email: "m5@gm.com"},
	}

	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
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
