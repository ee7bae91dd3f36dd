package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/messaging"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

const (
	BillCreatedExchange = "bill-created"
	MessageKeyHeader    = "message-key"
)

// Broker is the part of messaging.RabbitMQ the publisher needs.
type Broker interface {
	DeclareTopic(exchange string) error
	PublishConfirmed(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error
}

type BillPublisher struct {
	broker     Broker
	exchange   string
	partitions int
	timeout    time.Duration
	log        *zap.Logger
}

func NewBillPublisher(broker Broker, exchange string, partitions int, timeout time.Duration, log *zap.Logger) (*BillPublisher, error) {
	if err := broker.DeclareTopic(exchange); err != nil {
		return nil, err
	}

	return &BillPublisher{
		broker:     broker,
		exchange:   exchange,
		partitions: partitions,
		timeout:    timeout,
		log:        log.Named("publisher"),
	}, nil
}

// PublishBillCreated sends event keyed by its bill ID and waits for the
// broker's confirm, at most p.timeout.
func (p *BillPublisher) PublishBillCreated(ctx context.Context, event models.BillCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := event.Key()
	partition := messaging.Partition(key, p.partitions)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    key,
		Timestamp:    event.BillingDate,
		Type:         p.exchange,
		Headers:      amqp.Table{MessageKeyHeader: key},
		Body:         data,
	}

	if err := p.broker.PublishConfirmed(ctx, p.exchange, messaging.RoutingKey(partition), msg); err != nil {
		return fmt.Errorf("publish bill %s: %w", key, err)
	}

	p.log.Debug("Bill event published", zap.String("key", key), zap.Int("partition", partition))
	return nil
}
