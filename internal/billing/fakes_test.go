package billing

import (
	"context"
	"errors"
	"sync"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

var errUnknown = errors.New("not found")

type fakeCustomers struct {
	byID  map[int64]models.Customer
	block bool
}

func (f *fakeCustomers) FindCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, errUnknown
	}
	return &c, nil
}

func (f *fakeCustomers) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

type fakeProducts struct {
	byID    map[int64]models.Product
	blockID int64
}

func (f *fakeProducts) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	if id == f.blockID {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, errUnknown
	}
	return &p, nil
}

func (f *fakeProducts) ListProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

// memStore is an in-memory Store. failItemAt makes the n-th SaveLineItem call
// (1-based) fail; zero disables it.
type memStore struct {
	mu         sync.Mutex
	nextBill   int64
	nextItem   int64
	bills      []models.Bill
	items      []models.LineItem
	itemCalls  int
	failItemAt int
	failBills  map[int64]bool // customer IDs whose SaveBill fails
}

func newMemStore() *memStore {
	return &memStore{failBills: map[int64]bool{}}
}

func (s *memStore) SaveBill(ctx context.Context, bill *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failBills[bill.CustomerID] {
		return errors.New("disk full")
	}
	s.nextBill++
	bill.ID = s.nextBill
	s.bills = append(s.bills, *bill)
	return nil
}

func (s *memStore) FindBill(ctx context.Context, id int64) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bills {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListBills(ctx context.Context) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bill(nil), s.bills...), nil
}

func (s *memStore) CountBills(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.bills)), nil
}

func (s *memStore) SaveLineItem(ctx context.Context, item *models.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemCalls++
	if s.failItemAt != 0 && s.itemCalls == s.failItemAt {
		return errors.New("connection reset")
	}
	s.nextItem++
	item.ID = s.nextItem
	s.items = append(s.items, *item)
	return nil
}

func (s *memStore) FindLineItemsByBill(ctx context.Context, billID int64) ([]models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LineItem, 0)
	for _, it := range s.items {
		if it.BillID == billID {
			out = append(out, it)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.BillCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishBillCreated(ctx context.Context, event models.BillCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}
