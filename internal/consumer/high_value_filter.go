package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

// HighValueThreshold is exclusive: a bill of exactly this amount is not high value.
const HighValueThreshold = 500.0

func IsHighValue(event models.BillCreatedEvent) bool {
	return event.TotalAmount > HighValueThreshold
}

// SignalSink receives the high-value bills picked out by HighValueFilter.
type SignalSink interface {
	Emit(ctx context.Context, event models.BillCreatedEvent) error
}

// HighValueFilter passes bills above HighValueThreshold to its sinks and
// drops the rest. It keeps no state, so a redelivered bill is signalled again.
type HighValueFilter struct {
	sinks []SignalSink
	log   *zap.Logger
}

func NewHighValueFilter(log *zap.Logger, sinks ...SignalSink) *HighValueFilter {
	return &HighValueFilter{sinks: sinks, log: log.Named("stream-filter")}
}

func (f *HighValueFilter) Handle(ctx context.Context, event models.BillCreatedEvent) error {
	if !IsHighValue(event) {
		return nil
	}

	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("high-value")}
}

func (s *LogSink) Emit(_ context.Context, event models.BillCreatedEvent) error {
	s.log.Info("High-value bill",
		zap.String("key", event.Key()),
		zap.Int64("customer_id", event.CustomerID),
		zap.String("customer_name", event.CustomerName),
		zap.Float64("total_amount", event.TotalAmount),
	)
	return nil
}

// RedisStreamSink appends high-value bills to a Redis stream for downstream
// readers such as fraud review.
type RedisStreamSink struct {
	client *redis.Client
	stream string
}

func NewRedisStreamSink(client *redis.Client, stream string) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream}
}

func (s *RedisStreamSink) Emit(ctx context.Context, event models.BillCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"key":         event.Key(),
			"customerId":  event.CustomerID,
			"totalAmount": event.TotalAmount,
			"event":       string(data),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
