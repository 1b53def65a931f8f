package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher holds a single AMQP connection opened at startup. A nil Publisher
// is valid and drops every event, so the broker stays optional.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
}

// NewPublisher dials the broker and declares the booking queues. Queues are
// durable so messages survive broker restarts.
func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	for _, queue := range []string{QueueBookingCreated, QueueBookingCancelled, QueueBookingRescheduled} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", queue, err)
		}
	}

	return &Publisher{
		conn: conn,
		ch:   ch,
		log:  log.With(zap.String("component", "events")),
	}, nil
}

// Publish sends a booking event to the named queue. Messages are persistent.
func (p *Publisher) Publish(ctx context.Context, queue string, event BookingEvent) {
	if p == nil || p.ch == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("Failed to marshal booking event", zap.Error(err))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		p.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("queue", queue),
			zap.String("booking_id", event.BookingID),
		)
		return
	}

	p.log.Debug("Booking event published",
		zap.String("queue", queue),
		zap.String("booking_id", event.BookingID),
	)
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
