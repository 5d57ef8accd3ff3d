// Package stream consumes the shared order-event topic and hands every event
// to the fanout hub. Running the consumer in each instance gives every
// instance's dashboard connections the full event stream regardless of which
// instance committed the order.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"foodorders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// eventReader abstracts kafka.Reader for testability.
type eventReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// dispatcher is the hub-side contract: route one event to its tenant's
// connections.
type dispatcher interface {
	Dispatch(event order.Event)
}

// KafkaEventConsumer reads order events from Kafka and dispatches them to
// the fanout hub.
type KafkaEventConsumer struct {
	reader eventReader
	hub    dispatcher
	logger *slog.Logger
}

// NewKafkaEventConsumer creates a consumer in its own consumer group, so
// every service instance receives every event.
func NewKafkaEventConsumer(
	brokers []string,
	topic, groupID string,
	hub dispatcher,
	logger *slog.Logger,
) *KafkaEventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return NewKafkaEventConsumerWith(reader, hub, logger)
}

// NewKafkaEventConsumerWith is only for tests to inject a fake reader.
func NewKafkaEventConsumerWith(reader eventReader, hub dispatcher, logger *slog.Logger) *KafkaEventConsumer {
	return &KafkaEventConsumer{
		reader: reader,
		hub:    hub,
		logger: logger.With("component", "event-consumer"),
	}
}

// Run reads messages until the context is canceled. Malformed messages are
// logged and skipped; the stream must keep flowing for the healthy ones.
func (c *KafkaEventConsumer) Run(ctx context.Context) error {
	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, kafka.ErrGroupClosed) {
				return nil
			}
			c.logger.Error("read event", "error", err)
			continue
		}

		var event order.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.logger.Error("unmarshal event", "error", err, "offset", message.Offset)
			continue
		}

		c.hub.Dispatch(event)
	}
}

// Close shuts the underlying reader down, which also unblocks Run.
func (c *KafkaEventConsumer) Close() error {
	return c.reader.Close()
}
