package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

type memCustomers struct {
	byID []models.Customer
	err  error
}

func (m *memCustomers) GetAll(context.Context) ([]models.Customer, error) {
	return m.byID, m.err
}

func (m *memCustomers) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.byID {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCustomers) Create(_ context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	c := models.Customer{ID: int64(len(m.byID) + 1), Name: req.Name, Email: req.Email}
	m.byID = append(m.byID, c)
	return &c, nil
}

func customerRouter(store CustomerStore) *mux.Router {
	r := mux.NewRouter()
	NewCustomerHandler(store).Routes(r)
	return r
}

func TestCustomerHandler(t *testing.T) {
	store := &memCustomers{byID: []models.Customer{{ID: 1, Name: "John Doe", Email: "m@gm.com"}}}
	r := customerRouter(store)

	w := serve(r, http.MethodGet, "/api/customers/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"John Doe","email":"m@gm.com"}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/customers/9", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/customers/abc", "").Code)

	w = serve(r, http.MethodPost, "/api/customers", `{"name":"Ana","email":"ana@x.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, http.MethodGet, "/api/customers", "")
	assert.Contains(t, w.Body.String(), "ana@x.com")
}

func TestCreateCustomer_Validation(t *testing.T) {
	r := customerRouter(&memCustomers{})

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/customers", `{"name":"Ana","email":"not-an-email"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/customers", `{"email":"ana@x.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/customers", `{`).Code)
}

func TestCustomerHandler_StoreError(t *testing.T) {
	r := customerRouter(&memCustomers{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/api/customers", "").Code)
}
