package consumer

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// BillingStats is the running tally kept by the notification consumer.
type BillingStats struct {
	Bills   int64
	Revenue decimal.Decimal
}

// NotificationConsumer reacts to new bills on behalf of customer-service.
type NotificationConsumer struct {
	log *zap.Logger

	mu    sync.Mutex
	stats BillingStats
}

func NewNotificationConsumer(log *zap.Logger) *NotificationConsumer {
	return &NotificationConsumer{log: log.Named("notification")}
}

func (c *NotificationConsumer) Handle(ctx context.Context, event models.BillCreatedEvent) error {
	log := c.log.With(zap.Int64("bill_id", event.BillID), zap.Int64("customer_id", event.CustomerID))

	log.Info("Bill received",
		zap.String("customer_name", event.CustomerName),
		zap.String("customer_email", event.CustomerEmail),
		zap.Time("billing_date", event.BillingDate),
		zap.Int("total_items", event.TotalItems),
		zap.Float64("total_amount", event.TotalAmount),
	)

	log.Info("Sending confirmation email", zap.String("to", event.CustomerEmail))

	c.mu.Lock()
	c.stats.Bills++
	c.stats.Revenue = c.stats.Revenue.Add(decimal.NewFromFloat(event.TotalAmount))
	stats := c.stats
	c.mu.Unlock()
	log.Info("Billing statistics updated", zap.Int64("bills", stats.Bills), zap.String("revenue", stats.Revenue.StringFixed(2)))

	log.Info("Sending push notification")
	log.Info("Archiving bill for accounting")
	log.Info("Audit", zap.String("action", "BILL_CREATED"))

	return nil
}

func (c *NotificationConsumer) Stats() BillingStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
