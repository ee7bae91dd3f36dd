package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/billing"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBillService struct {
	createErr  error
	created    []models.Selection
	customerID int64
	bills      map[int64]models.Bill
	items      map[int64][]models.LineItem
	err        error
}

func (f *fakeBillService) CreateBill(_ context.Context, customerID int64, selections []models.Selection) (*models.Bill, error) {
	f.customerID = customerID
	f.created = selections
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Bill{ID: 1, CustomerID: customerID, Customer: &models.Customer{ID: customerID, Name: "Ana"}}, nil
}

func (f *fakeBillService) GenerateForAllCustomers(context.Context) (int64, error) {
	return 3, f.err
}

func (f *fakeBillService) GetBill(_ context.Context, id int64) (*models.Bill, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bills[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBillService) GetBillItems(_ context.Context, id int64) ([]models.LineItem, error) {
	if items, ok := f.items[id]; ok {
		return items, nil
	}
	return []models.LineItem{}, nil
}

func (f *fakeBillService) ListBills(context.Context) ([]models.Bill, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Bill, 0, len(f.bills))
	for _, b := range f.bills {
		out = append(out, b)
	}
	return out, nil
}

func billRouter(svc BillService) *gin.Engine {
	h := NewBillHandler(svc)
	r := gin.New()
	r.GET("/bills", h.ListBills)
	r.GET("/bills/:id", h.GetBill)
	r.GET("/bills/:id/items", h.GetBillItems)
	r.POST("/bills/generate-all", h.GenerateAll)
	r.POST("/bills/customer/:customerId", h.CreateBill)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBill(t *testing.T) {
	svc := &fakeBillService{}
	w := serve(billRouter(svc), http.MethodPost, "/bills/customer/7", `[{"productId":1,"quantity":3},{"productId":2,"quantity":1}]`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), svc.customerID)
	assert.Equal(t, []models.Selection{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 1}}, svc.created)

	var bill models.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
	assert.Equal(t, "Ana", bill.Customer.Name)
}

func TestCreateBill_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"non numeric customer", "/bills/customer/abc", `[]`},
		{"not a list", "/bills/customer/7", `{"productId":1}`},
		{"zero quantity", "/bills/customer/7", `[{"productId":1,"quantity":0}]`},
		{"negative quantity", "/bills/customer/7", `[{"productId":1,"quantity":-2}]`},
		{"missing product", "/bills/customer/7", `[{"quantity":2}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBillService{}
			w := serve(billRouter(svc), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, svc.created, "service must not be called")
		})
	}
}

func TestCreateBill_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: id 9", billing.ErrCustomerNotFound), http.StatusBadRequest},
		{fmt.Errorf("%w: save bill: conn refused", billing.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{errors.New("context canceled"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := serve(billRouter(&fakeBillService{createErr: tt.err}), http.MethodPost, "/bills/customer/9", `[]`)
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
		assert.Contains(t, w.Body.String(), `"error"`)
	}
}

func TestGetBill(t *testing.T) {
	svc := &fakeBillService{bills: map[int64]models.Bill{4: {ID: 4, CustomerID: 7}}}
	r := billRouter(svc)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/bills/4", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/bills/5", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/bills/x", "").Code)
}

func TestGetBillItems_UnknownBill(t *testing.T) {
	w := serve(billRouter(&fakeBillService{}), http.MethodGet, "/bills/99/items", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListBills(t *testing.T) {
	svc := &fakeBillService{bills: map[int64]models.Bill{1: {ID: 1}, 2: {ID: 2}}}
	w := serve(billRouter(svc), http.MethodGet, "/bills", "")

	require.Equal(t, http.StatusOK, w.Code)
	var bills []models.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bills))
	assert.Len(t, bills, 2)

	svc.err = billing.ErrStoreUnavailable
	assert.Equal(t, http.StatusServiceUnavailable, serve(billRouter(svc), http.MethodGet, "/bills", "").Code)
}

func TestGenerateAll(t *testing.T) {
	w := serve(billRouter(&fakeBillService{}), http.MethodPost, "/bills/generate-all", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bills":3}`, w.Body.String())
}
