package consumer

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// HandlerFunc processes one bill-created event. A returned error puts the
// message back on its queue.
type HandlerFunc func(ctx context.Context, event models.BillCreatedEvent) error

// Run feeds deliveries to handle one at a time until messages is closed or
// ctx is done. Undecodable messages are dropped.
func Run(ctx context.Context, messages <-chan amqp.Delivery, handle HandlerFunc, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				log.Info("Delivery channel closed")
				return
			}
			process(ctx, msg, handle, log)
		}
	}
}

func process(ctx context.Context, msg amqp.Delivery, handle HandlerFunc, log *zap.Logger) {
	log = log.With(
		zap.String("message_id", msg.MessageId),
		zap.String("routing_key", msg.RoutingKey),
		zap.Bool("redelivered", msg.Redelivered),
	)

	var event models.BillCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Error("Failed to parse event", zap.Error(err))
		msg.Nack(false, false)
		return
	}

	if err := handle(ctx, event); err != nil {
		log.Warn("Event handling failed, requeued", zap.Int64("bill_id", event.BillID), zap.Error(err))
		msg.Nack(false, true)
		return
	}

	msg.Ack(false)
}
