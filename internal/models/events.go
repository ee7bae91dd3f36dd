package models

import (
	"strconv"
	"time"
)

// BillCreatedEvent is published once per bill after it has been persisted.
// It carries everything subscribers need, so they never call back into the
// customer or product services.
type BillCreatedEvent struct {
	BillID        int64     `json:"billId"`
	CustomerID    int64     `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	BillingDate   time.Time `json:"billingDate"`
	TotalItems    int       `json:"totalItems"`
	TotalAmount   float64   `json:"totalAmount"`
}

// Key is the partition key of the event: the bill ID as text.
func (e BillCreatedEvent) Key() string {
	return strconv.FormatInt(e.BillID, 10)
}
