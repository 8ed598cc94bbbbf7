// Package kafka publishes notification events for the downstream
// notification service.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"foodorder/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// eventMessage is the wire format of one notification event.
type eventMessage struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Note      string    `json:"note,omitempty"`
	EmittedAt time.Time `json:"emitted_at"`
}

// Dispatcher implements ports.NotificationDispatcher on a Kafka topic.
//
// Dispatch is fire-and-forget: publishing happens on a detached goroutine
// with its own timeout, and a publish failure is logged, never propagated.
// An order must not fail because the notification pipeline is down.
type Dispatcher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher publishing to the given brokers and
// topic. Messages are keyed by order ID so one order's events stay in order
// within a partition.
func NewDispatcher(brokers []string, topic string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 100 * time.Millisecond,
		},
		logger: logger.With("component", "kafka_dispatcher"),
	}
}

// Notify publishes the event without blocking the caller.
func (d *Dispatcher) Notify(ctx context.Context, event ports.NotificationEvent) {
	msg := eventMessage{
		Type:      event.Type,
		OrderID:   event.OrderID.String(),
		UserID:    event.UserID.String(),
		Note:      event.Note,
		EmittedAt: time.Now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		d.logger.ErrorContext(ctx, "notification event marshal failed",
			"type", event.Type, "error", err)
		return
	}

	// Detach from the request context so an already-answered request does
	// not cancel the publish.
	publishCtx := context.WithoutCancel(ctx)

	go func() {
		writeCtx, cancel := context.WithTimeout(publishCtx, publishTimeout)
		defer cancel()

		err := d.writer.WriteMessages(writeCtx, kafka.Message{
			Key:   []byte(msg.OrderID),
			Value: payload,
		})
		if err != nil {
			d.logger.ErrorContext(writeCtx, "notification publish failed",
				"type", event.Type,
				"order_id", msg.OrderID,
				"error", err)
		}
	}()
}

// Close flushes and closes the underlying writer.
func (d *Dispatcher) Close() error {
	return d.writer.Close()
}
