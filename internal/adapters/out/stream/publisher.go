// Package stream provides the Kafka-backed event channel. All tenants share
// one topic; messages are keyed by tenant id so per-tenant ordering survives
// partitioning. Delivery is best-effort: a failed or dropped notification is
// logged and counted, never retried against committed state.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/metrics"

	"github.com/segmentio/kafka-go"
)

// messageWriter abstracts kafka.Writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaEventPublisher implements ports.EventPublisher over a Kafka topic.
// Publish enqueues without blocking the caller; a single worker goroutine
// drains the queue in FIFO order, which keeps the commit path free of broker
// latency.
type KafkaEventPublisher struct {
	writer    messageWriter
	logger    *slog.Logger
	registry  *metrics.Registry
	queue     chan order.Event
	done      chan struct{}
	closeOnce sync.Once
}

const publishQueueSize = 256

// NewKafkaEventPublisher creates a publisher writing to the given topic.
// The worker goroutine starts immediately; call Close to drain and stop it.
func NewKafkaEventPublisher(
	brokers []string,
	topic string,
	logger *slog.Logger,
	registry *metrics.Registry,
) *KafkaEventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return newPublisher(writer, logger, registry)
}

// NewKafkaEventPublisherWith is only for tests to inject a fake writer.
func NewKafkaEventPublisherWith(
	writer messageWriter,
	logger *slog.Logger,
	registry *metrics.Registry,
) *KafkaEventPublisher {
	return newPublisher(writer, logger, registry)
}

func newPublisher(writer messageWriter, logger *slog.Logger, registry *metrics.Registry) *KafkaEventPublisher {
	p := &KafkaEventPublisher{
		writer:   writer,
		logger:   logger.With("component", "event-publisher"),
		registry: registry,
		queue:    make(chan order.Event, publishQueueSize),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues the event for delivery. Never blocks: if the queue is
// full the event is dropped and counted, honoring the best-effort contract.
func (p *KafkaEventPublisher) Publish(event order.Event) {
	select {
	case p.queue <- event:
	default:
		p.registry.EventsDropped.Inc()
		p.logger.Warn("publish queue full, dropping event",
			"type", event.Type, "order_id", event.OrderID)
	}
}

// Close drains the queue, stops the worker, and closes the underlying writer
// if it owns one.
func (p *KafkaEventPublisher) Close() error {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
	<-p.done

	if closer, ok := p.writer.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (p *KafkaEventPublisher) run() {
	defer close(p.done)

	for event := range p.queue {
		payload, err := json.Marshal(event)
		if err != nil {
			p.registry.PublishFailures.Inc()
			p.logger.Error("marshal event", "error", err, "order_id", event.OrderID)
			continue
		}

		err = p.writer.WriteMessages(context.Background(), kafka.Message{
			Key:   []byte(event.TenantID),
			Value: payload,
		})
		if err != nil {
			p.registry.PublishFailures.Inc()
			p.logger.Error("write event", "error", err,
				"type", event.Type, "order_id", event.OrderID)
			continue
		}

		p.registry.EventsPublished.Inc()
	}
}
