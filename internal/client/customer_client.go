package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// CustomerClient reads the customer directory of customer-service.
type CustomerClient struct {
	jsonClient
}

func NewCustomerClient(baseURL string, httpClient *http.Client) *CustomerClient {
	return &CustomerClient{jsonClient: newJSONClient(baseURL, httpClient)}
}

// FindCustomer returns ErrNotFound (wrapped) for an unknown customer.
func (c *CustomerClient) FindCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := c.get(ctx, fmt.Sprintf("/api/customers/%d", id), &customer); err != nil {
		return nil, fmt.Errorf("customer %d: %w", id, err)
	}
	return &customer, nil
}

func (c *CustomerClient) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.get(ctx, "/api/customers", &customers); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}
