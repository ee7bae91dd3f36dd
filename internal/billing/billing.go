// Package billing creates bills from the customer directory and product
// catalog, stores them, and announces each new bill with a BillCreatedEvent.
package billing

//go:generate mockgen -source=billing.go -destination=mocks/billing_mock.go -package=mock_billing

import (
	"context"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// CustomerDirectory looks customers up in customer-service.
type CustomerDirectory interface {
	FindCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// ProductDirectory looks products up in inventory-service.
type ProductDirectory interface {
	FindProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Store persists bills and line items. FindBill returns nil, nil for an unknown ID.
type Store interface {
	SaveBill(ctx context.Context, bill *models.Bill) error
	FindBill(ctx context.Context, id int64) (*models.Bill, error)
	ListBills(ctx context.Context) ([]models.Bill, error)
	CountBills(ctx context.Context) (int64, error)
	SaveLineItem(ctx context.Context, item *models.LineItem) error
	FindLineItemsByBill(ctx context.Context, billID int64) ([]models.LineItem, error)
}

// EventPublisher sends a BillCreatedEvent and returns once the broker has acknowledged it.
type EventPublisher interface {
	PublishBillCreated(ctx context.Context, event models.BillCreatedEvent) error
}
