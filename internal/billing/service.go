package billing

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

const defaultLookupTimeout = 3 * time.Second

var errEmptyLookup = errors.New("directory returned no result")

// Service orchestrates bill creation. It holds no state shared between
// calls, so concurrent requests run independently.
type Service struct {
	customers CustomerDirectory
	products  ProductDirectory
	store     Store
	publisher EventPublisher
	log       *zap.Logger

	lookupTimeout time.Duration
	now           func() time.Time
	quantity      func() int
}

type Option func(*Service)

// WithLookupTimeout bounds every single customer or product lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) { s.lookupTimeout = d }
}

// WithClock replaces time.Now for billing dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithQuantityGenerator replaces the random quantity used by GenerateForAllCustomers.
func WithQuantityGenerator(fn func() int) Option {
	return func(s *Service) { s.quantity = fn }
}

func NewService(
	customers CustomerDirectory,
	products ProductDirectory,
	store Store,
	publisher EventPublisher,
	log *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		customers:     customers,
		products:      products,
		store:         store,
		publisher:     publisher,
		log:           log.Named("billing"),
		lookupTimeout: defaultLookupTimeout,
		now:           time.Now,
		quantity:      func() int { return rand.IntN(10) + 1 },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBill bills customerID for the given selections, in order.
//
// An unresolvable customer rejects the whole bill with ErrCustomerNotFound
// before anything is written. An unresolvable product only drops its own
// selection. The event is published once after the writes; a publish failure
// is logged and does not fail the call.
func (s *Service) CreateBill(ctx context.Context, customerID int64, selections []models.Selection) (*models.Bill, error) {
	start := s.now()
	log := s.log.With(zap.Int64("customer_id", customerID))

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		log.Info("Rejecting bill, customer unresolved", zap.Error(err))
		return nil, fmt.Errorf("%w: id %d: %v", ErrCustomerNotFound, customerID, err)
	}

	bill := &models.Bill{BillingDate: start, CustomerID: customerID}
	if err := s.store.SaveBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("%w: save bill: %w", ErrStoreUnavailable, err)
	}
	log = log.With(zap.Int64("bill_id", bill.ID))

	totalItems := 0
	totalAmount := decimal.Zero

	for i, sel := range selections {
		product, err := s.findProduct(ctx, sel.ProductID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("bill %d interrupted at selection %d: %w", bill.ID, i, ctx.Err())
			}
			log.Debug("Skipping unresolved product", zap.Int64("product_id", sel.ProductID), zap.Error(err))
			continue
		}

		item := &models.LineItem{
			BillID:    bill.ID,
			ProductID: sel.ProductID,
			Quantity:  sel.Quantity,
			UnitPrice: product.Price,
		}
		if err := s.store.SaveLineItem(ctx, item); err != nil {
			return nil, fmt.Errorf("%w: save line item %d of bill %d: %w", ErrStoreUnavailable, i, bill.ID, err)
		}

		totalItems += sel.Quantity
		totalAmount = totalAmount.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(sel.Quantity))))
	}

	event := models.BillCreatedEvent{
		BillID:        bill.ID,
		CustomerID:    customerID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		BillingDate:   bill.BillingDate,
		TotalItems:    totalItems,
		TotalAmount:   totalAmount.InexactFloat64(),
	}

	// The bill is already stored, so a caller that went away must not stop the announcement.
	if err := s.publisher.PublishBillCreated(context.WithoutCancel(ctx), event); err != nil {
		log.Warn("Failed to publish bill-created event", zap.Error(err))
	} else {
		log.Info("Published bill-created event", zap.String("key", event.Key()))
	}

	log.Info("Bill created",
		zap.Int("selections", len(selections)),
		zap.Int("total_items", totalItems),
		zap.Float64("total_amount", event.TotalAmount),
	)

	bill.Customer = customer
	return bill, nil
}

// GenerateForAllCustomers creates one bill per known customer holding every
// known product at a random quantity in [1,10]. No events are published.
// A customer whose bill fails is logged and skipped. It returns the number of
// bills in the store afterwards.
func (s *Service) GenerateForAllCustomers(ctx context.Context) (int64, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list customers: %w", err)
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}

	for _, c := range customers {
		if err := s.generateBill(ctx, c.ID, products); err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			s.log.Warn("Failed to generate bill", zap.Int64("customer_id", c.ID), zap.Error(err))
		}
	}

	n, err := s.store.CountBills(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: count bills: %w", ErrStoreUnavailable, err)
	}
	s.log.Info("Generated bills", zap.Int("customers", len(customers)), zap.Int("products", len(products)), zap.Int64("bills", n))
	return n, nil
}

func (s *Service) generateBill(ctx context.Context, customerID int64, products []models.Product) error {
	bill := &models.Bill{BillingDate: s.now(), CustomerID: customerID}
	if err := s.store.SaveBill(ctx, bill); err != nil {
		return err
	}

	for _, p := range products {
		item := &models.LineItem{
			BillID:    bill.ID,
			ProductID: p.ID,
			Quantity:  s.quantity(),
			UnitPrice: p.Price,
		}
		if err := s.store.SaveLineItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// GetBill returns the bill with its customer attached, or nil, nil if there is
// no such bill. A customer lookup failure leaves Customer nil.
func (s *Service) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	bill, err := s.store.FindBill(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: find bill %d: %w", ErrStoreUnavailable, id, err)
	}
	if bill == nil {
		return nil, nil
	}

	customer, err := s.findCustomer(ctx, bill.CustomerID)
	if err != nil {
		s.log.Warn("Could not resolve bill customer",
			zap.Int64("bill_id", id), zap.Int64("customer_id", bill.CustomerID), zap.Error(err))
		return bill, nil
	}
	bill.Customer = customer
	return bill, nil
}

// GetBillItems returns the line items of a bill, each with its product
// attached when it still resolves. An unknown bill yields an empty slice.
func (s *Service) GetBillItems(ctx context.Context, id int64) ([]models.LineItem, error) {
	bill, err := s.store.FindBill(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: find bill %d: %w", ErrStoreUnavailable, id, err)
	}
	if bill == nil {
		return []models.LineItem{}, nil
	}

	items, err := s.store.FindLineItemsByBill(ctx, bill.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: find line items of bill %d: %w", ErrStoreUnavailable, id, err)
	}

	for i := range items {
		product, err := s.findProduct(ctx, items[i].ProductID)
		if err != nil {
			s.log.Debug("Could not resolve line item product",
				zap.Int64("bill_id", id), zap.Int64("product_id", items[i].ProductID), zap.Error(err))
			continue
		}
		items[i].Product = product
	}
	return items, nil
}

func (s *Service) ListBills(ctx context.Context) ([]models.Bill, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list bills: %w", ErrStoreUnavailable, err)
	}
	return bills, nil
}

func (s *Service) findCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	c, err := s.customers.FindCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errEmptyLookup
	}
	return c, nil
}

func (s *Service) findProduct(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	p, err := s.products.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errEmptyLookup
	}
	return p, nil
}
