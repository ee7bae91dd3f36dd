package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// BillRepository stores bills and their line items. Rows are only ever
// inserted; there is no update or delete path.
type BillRepository struct {
	db *sql.DB
}

func NewBillRepository(database *PostgresDB) *BillRepository {
	return &BillRepository{db: database.Conn}
}

// SaveBill inserts the bill and sets its generated ID.
func (r *BillRepository) SaveBill(ctx context.Context, bill *models.Bill) error {
	query := `
		INSERT INTO bills (billing_date, customer_id)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, bill.BillingDate, bill.CustomerID).Scan(&bill.ID); err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// FindBill returns nil, nil when the bill does not exist.
func (r *BillRepository) FindBill(ctx context.Context, id int64) (*models.Bill, error) {
	query := `SELECT id, billing_date, customer_id FROM bills WHERE id = $1`

	var b models.Bill
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.BillingDate, &b.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &b, nil
}

func (r *BillRepository) ListBills(ctx context.Context) ([]models.Bill, error) {
	query := `SELECT id, billing_date, customer_id FROM bills ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := make([]models.Bill, 0)
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.BillingDate, &b.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

func (r *BillRepository) CountBills(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bills`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return n, nil
}

// SaveLineItem inserts the item and sets its generated ID.
func (r *BillRepository) SaveLineItem(ctx context.Context, item *models.LineItem) error {
	query := `
		INSERT INTO line_items (bill_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, item.BillID, item.ProductID, item.Quantity, item.UnitPrice).
		Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert line item: %w", err)
	}
	return nil
}

func (r *BillRepository) FindLineItemsByBill(ctx context.Context, billID int64) ([]models.LineItem, error) {
	query := `SELECT id, bill_id, product_id, quantity, unit_price FROM line_items WHERE bill_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	items := make([]models.LineItem, 0)
	for rows.Next() {
		var it models.LineItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}
	return items, nil
}
