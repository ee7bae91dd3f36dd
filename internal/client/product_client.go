package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// ProductClient reads the product catalog of inventory-service.
type ProductClient struct {
	jsonClient
}

func NewProductClient(baseURL string, httpClient *http.Client) *ProductClient {
	return &ProductClient{jsonClient: newJSONClient(baseURL, httpClient)}
}

// FindProduct returns ErrNotFound (wrapped) for an unknown product.
func (c *ProductClient) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, fmt.Sprintf("/api/products/%d", id), &product); err != nil {
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	return &product, nil
}

func (c *ProductClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/api/products", &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
