package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/messaging"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

type published struct {
	exchange   string
	routingKey string
	msg        amqp.Publishing
	deadline   bool
}

type fakeBroker struct {
	declared   []string
	declareErr error
	publishErr error
	sent       []published
}

func (b *fakeBroker) DeclareTopic(exchange string) error {
	b.declared = append(b.declared, exchange)
	return b.declareErr
}

func (b *fakeBroker) PublishConfirmed(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	_, hasDeadline := ctx.Deadline()
	b.sent = append(b.sent, published{exchange, routingKey, msg, hasDeadline})
	return b.publishErr
}

func newTestPublisher(t *testing.T, b *fakeBroker) *BillPublisher {
	t.Helper()
	p, err := NewBillPublisher(b, BillCreatedExchange, 6, time.Second, zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestNewBillPublisher_DeclaresExchange(t *testing.T) {
	b := &fakeBroker{}
	newTestPublisher(t, b)
	assert.Equal(t, []string{"bill-created"}, b.declared)

	_, err := NewBillPublisher(&fakeBroker{declareErr: errors.New("access refused")}, BillCreatedExchange, 6, time.Second, zap.NewNop())
	assert.Error(t, err)
}

func TestPublishBillCreated(t *testing.T) {
	b := &fakeBroker{}
	p := newTestPublisher(t, b)

	event := models.BillCreatedEvent{
		BillID:        1,
		CustomerID:    7,
		CustomerName:  "Ana",
		CustomerEmail: "ana@x.com",
		BillingDate:   time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		TotalItems:    3,
		TotalAmount:   30.0,
	}
	require.NoError(t, p.PublishBillCreated(context.Background(), event))

	require.Len(t, b.sent, 1)
	sent := b.sent[0]
	assert.Equal(t, "bill-created", sent.exchange)
	assert.Equal(t, messaging.RoutingKey(messaging.Partition("1", 6)), sent.routingKey)
	assert.Equal(t, "1", sent.msg.MessageId)
	assert.Equal(t, "1", sent.msg.Headers[MessageKeyHeader])
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.True(t, sent.deadline, "confirm wait is bounded")

	var body map[string]any
	require.NoError(t, json.Unmarshal(sent.msg.Body, &body))
	assert.Equal(t, float64(1), body["billId"])
	assert.Equal(t, "Ana", body["customerName"])
	assert.Equal(t, "ana@x.com", body["customerEmail"])
	assert.Equal(t, float64(3), body["totalItems"])
	assert.Equal(t, 30.0, body["totalAmount"])
	assert.Equal(t, "2026-10-19T09:00:00Z", body["billingDate"])
}

func TestPublishBillCreated_SameBillSamePartition(t *testing.T) {
	b := &fakeBroker{}
	p := newTestPublisher(t, b)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.PublishBillCreated(context.Background(), models.BillCreatedEvent{BillID: 42}))
	}
	require.NoError(t, p.PublishBillCreated(context.Background(), models.BillCreatedEvent{BillID: 43}))

	assert.Equal(t, b.sent[0].routingKey, b.sent[1].routingKey)
	assert.Equal(t, b.sent[0].routingKey, b.sent[2].routingKey)
	assert.Equal(t, "43", b.sent[3].msg.MessageId)
}

func TestPublishBillCreated_NotConfirmed(t *testing.T) {
	b := &fakeBroker{publishErr: messaging.ErrNacked}
	p := newTestPublisher(t, b)

	err := p.PublishBillCreated(context.Background(), models.BillCreatedEvent{BillID: 5})
	assert.ErrorIs(t, err, messaging.ErrNacked)
	assert.Len(t, b.sent, 1, "no retry")
}
