// Package events publishes booking lifecycle events to RabbitMQ for
// downstream consumers (notifications, reporting, analytics). Publishing is
// best-effort: failures are logged and never fail the request that triggered
// them.
package events

import "time"

const (
	QueueBookingCreated     = "booking.created"
	QueueBookingCancelled   = "booking.cancelled"
	QueueBookingRescheduled = "booking.rescheduled"
)

// BookingEvent carries enough detail for consumers to notify or aggregate
// without querying the primary database.
type BookingEvent struct {
	BookingID       string    `json:"booking_id"`
	OrderNumber     string    `json:"order_number"`
	CarID           string    `json:"car_id"`
	ClientID        string    `json:"client_id"`
	PickupDateTime  time.Time `json:"pickup_datetime"`
	DropOffDateTime time.Time `json:"dropoff_datetime"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"`
	MadeBy          string    `json:"made_by"`
	OccurredAt      time.Time `json:"occurred_at"`
}
