package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/billing"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/logger"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// BillService is implemented by billing.Service.
type BillService interface {
	CreateBill(ctx context.Context, customerID int64, selections []models.Selection) (*models.Bill, error)
	GenerateForAllCustomers(ctx context.Context) (int64, error)
	GetBill(ctx context.Context, id int64) (*models.Bill, error)
	GetBillItems(ctx context.Context, id int64) ([]models.LineItem, error)
	ListBills(ctx context.Context) ([]models.Bill, error)
}

type BillHandler struct {
	service  BillService
	validate *validator.Validate
}

func NewBillHandler(service BillService) *BillHandler {
	return &BillHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ListBills returns all bills without customer details
func (h *BillHandler) ListBills(c *gin.Context) {
	bills, err := h.service.ListBills(c.Request.Context())
	if err != nil {
		billError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetBill returns a single bill with its customer
func (h *BillHandler) GetBill(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	bill, err := h.service.GetBill(c.Request.Context(), id)
	if err != nil {
		billError(c, err)
		return
	}
	if bill == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
		return
	}

	c.JSON(http.StatusOK, bill)
}

// GetBillItems returns the line items of a bill, [] for an unknown bill
func (h *BillHandler) GetBillItems(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	items, err := h.service.GetBillItems(c.Request.Context(), id)
	if err != nil {
		billError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *BillHandler) GenerateAll(c *gin.Context) {
	n, err := h.service.GenerateForAllCustomers(c.Request.Context())
	if err != nil {
		billError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": n})
}

// CreateBill bills a customer for a list of {productId, quantity} selections
func (h *BillHandler) CreateBill(c *gin.Context) {
	customerID, ok := int64Param(c, "customerId")
	if !ok {
		return
	}

	var selections []models.Selection
	if err := c.ShouldBindJSON(&selections); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Var(selections, "dive"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.service.CreateBill(c.Request.Context(), customerID, selections)
	if err != nil {
		billError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

func billError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, billing.ErrCustomerNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, billing.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= 500 {
		logger.FromGin(c).Error("Billing request failed", zap.Error(err))
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
