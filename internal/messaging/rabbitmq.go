package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrNacked = errors.New("broker did not acknowledge message")

// RabbitMQ owns one connection and a publishing channel in confirm mode.
// Consumers get their own channels so prefetch and acks stay separate from
// publishing.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	log     *zap.Logger
}

func NewRabbitMQ(url string, log *zap.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	log = log.Named("rabbitmq")
	log.Info("Connected to RabbitMQ")

	return &RabbitMQ{
		conn:    conn,
		channel: channel,
		log:     log,
	}, nil
}

// DeclareTopic creates the durable direct exchange events are routed through.
// Routing keys are partition numbers.
func (r *RabbitMQ) DeclareTopic(exchange string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.channel.ExchangeDeclare(
		exchange, // name
		amqp.ExchangeDirect,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	r.log.Info("Exchange declared", zap.String("exchange", exchange))
	return nil
}

// PublishConfirmed publishes msg and waits for the broker's ack.
func (r *RabbitMQ) PublishConfirmed(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	confirm, err := r.channel.PublishWithDeferredConfirmWithContext(ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("waiting for publish confirm: %w", err)
	}
	if !acked {
		return ErrNacked
	}

	r.log.Debug("Message confirmed",
		zap.String("exchange", exchange),
		zap.String("routing_key", routingKey),
		zap.String("message_id", msg.MessageId),
	)
	return nil
}

// DeclareGroup creates the queues of a consumer group, one per partition,
// each bound to its partition's routing key. Single active consumer keeps
// one reader per partition when a group runs several instances.
func (r *RabbitMQ) DeclareGroup(ch *amqp.Channel, exchange, group string, partitions int) ([]string, error) {
	queues := make([]string, 0, partitions)
	for p := 0; p < partitions; p++ {
		name := QueueName(exchange, group, p)
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			amqp.Table{"x-single-active-consumer": true},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
		if err := ch.QueueBind(name, RoutingKey(p), exchange, false, nil); err != nil {
			return nil, fmt.Errorf("failed to bind queue %s: %w", name, err)
		}
		queues = append(queues, name)
	}

	r.log.Info("Consumer group declared",
		zap.String("exchange", exchange),
		zap.String("group", group),
		zap.Int("partitions", partitions),
	)
	return queues, nil
}

// ConsumeGroup joins group on exchange and returns every delivery of every
// partition on one channel, with manual acks. Deliveries of one partition
// arrive in order. The returned channel closes when ctx is done or the
// connection drops.
func (r *RabbitMQ) ConsumeGroup(ctx context.Context, exchange, group string, partitions, prefetch int) (<-chan amqp.Delivery, error) {
	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consumer channel: %w", err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set prefetch: %w", err)
	}

	queues, err := r.DeclareGroup(ch, exchange, group, partitions)
	if err != nil {
		ch.Close()
		return nil, err
	}

	sources := make([]<-chan amqp.Delivery, 0, len(queues))
	for _, q := range queues {
		msgs, err := ch.Consume(
			q,
			"",    // consumer tag
			false, // auto-ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			ch.Close()
			return nil, fmt.Errorf("failed to consume %s: %w", q, err)
		}
		sources = append(sources, msgs)
	}

	out := make(chan amqp.Delivery)
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range src {
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}(src)
	}

	go func() {
		<-ctx.Done()
		ch.Close()
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	r.log.Info("Listening", zap.String("group", group), zap.Strings("queues", queues))
	return out, nil
}

func (r *RabbitMQ) Close() {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}
