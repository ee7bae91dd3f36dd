package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/logger"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// CustomerStore is implemented by db.CustomerRepository.
type CustomerStore interface {
	GetAll(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error)
}

// CustomerHandler serves customer-service on plain net/http with gorilla/mux.
type CustomerHandler struct {
	repo     CustomerStore
	validate *validator.Validate
}

func NewCustomerHandler(repo CustomerStore) *CustomerHandler {
	return &CustomerHandler{repo: repo, validate: validator.New()}
}

// Routes registers the customer endpoints on r.
func (h *CustomerHandler) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/api/customers", h.ListCustomers).Methods(http.MethodGet)
	r.HandleFunc("/api/customers", h.CreateCustomer).Methods(http.MethodPost)
	r.HandleFunc("/api/customers/{id}", h.GetCustomer).Methods(http.MethodGet)
}

func (h *CustomerHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "customer-service"})
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	customer, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.repo.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("Request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
