package models

import "time"

// Bill is an invoice header. Customer is filled in for callers and never stored.
type Bill struct {
	ID          int64     `json:"id"`
	BillingDate time.Time `json:"billingDate"`
	CustomerID  int64     `json:"customerId"`
	Customer    *Customer `json:"customer,omitempty"`
}

// LineItem is one priced product entry of a bill. UnitPrice is the product
// price at the time the bill was created.
type LineItem struct {
	ID        int64    `json:"id"`
	BillID    int64    `json:"billId"`
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unitPrice"`
	Product   *Product `json:"product,omitempty"`
}

// Selection asks for a product at a given quantity on a new bill.
type Selection struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"gt=0"`
}
