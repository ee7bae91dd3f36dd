package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/db"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/logger"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// ProductStore is implemented by db.ProductRepository and db.CachedProductRepository.
type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductHandler struct {
	repo ProductStore
}

func NewProductHandler(repo ProductStore) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// ListProducts returns the catalog
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	product, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	err := h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, db.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func internalError(c *gin.Context, err error) {
	logger.FromGin(c).Error("Request failed", zap.Error(err))
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
