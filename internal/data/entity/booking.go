package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusReserved        BookingStatus = "RESERVED"
	BookingStatusReservedByAgent BookingStatus = "RESERVED_BY_SUPPORT_AGENT"
	BookingStatusServiceStarted  BookingStatus = "SERVICE_STARTED"
	BookingStatusServiceProvided BookingStatus = "SERVICE_PROVIDED"
	BookingStatusFinished        BookingStatus = "BOOKING_FINISHED"
	BookingStatusCancelled       BookingStatus = "CANCELLED"
)

type BookingMadeBy string

const (
	MadeByClient       BookingMadeBy = "CLIENT"
	MadeBySupportAgent BookingMadeBy = "SUPPORT_AGENT"
)

type Booking struct {
	BaseNoDelete
	// OrderNumber is a 4-digit human-facing token for display only. It is
	// not unique and must never be used as a lookup key.
	OrderNumber       string        `db:"order_number"`
	CarID             uuid.UUID     `db:"car_id"`
	ClientID          uuid.UUID     `db:"client_id"`
	PickupDateTime    time.Time     `db:"pickup_datetime"`
	DropOffDateTime   time.Time     `db:"dropoff_datetime"`
	PickupLocationID  uuid.UUID     `db:"pickup_location_id"`
	DropOffLocationID uuid.UUID     `db:"dropoff_location_id"`
	TotalPrice        float64       `db:"total_price"`
	Status            BookingStatus `db:"status"`
	MadeBy            BookingMadeBy `db:"made_by"`
	Version           int64         `db:"version"`
}

// Interval returns the booking's [pickup, dropoff) range.
func (b *Booking) Interval() Interval {
	return NewInterval(b.PickupDateTime, b.DropOffDateTime)
}

// IsOccupying reports whether the booking reserves the car's availability.
// Every status except CANCELLED occupies; cancelled bookings are excluded
// permanently.
func (b *Booking) IsOccupying() bool {
	return b.Status != BookingStatusCancelled
}

// OccupiesCarAt reports whether the booking should keep its car in BOOKED
// status at the given instant: it occupies and its interval contains now or
// is upcoming. Finished or fully elapsed bookings release the car.
func (b *Booking) OccupiesCarAt(now time.Time) bool {
	if !b.IsOccupying() || b.Status == BookingStatusFinished {
		return false
	}
	return now.Before(b.DropOffDateTime)
}

// DeriveStatus computes the time-derived status from the last explicitly
// stored action. The store records only explicit actions (reserve, cancel,
// finish); SERVICE_STARTED and SERVICE_PROVIDED are derived lazily at read
// time instead of by a background scheduler.
func DeriveStatus(stored BookingStatus, now, pickup, dropoff time.Time) BookingStatus {
	switch stored {
	case BookingStatusCancelled, BookingStatusFinished:
		// Terminal states are never overridden by time.
		return stored
	}

	if now.Before(pickup) {
		return stored
	}
	if now.Before(dropoff) {
		return BookingStatusServiceStarted
	}
	return BookingStatusServiceProvided
}

// DerivedStatus returns the booking's effective status at the given instant.
func (b *Booking) DerivedStatus(now time.Time) BookingStatus {
	return DeriveStatus(b.Status, now, b.PickupDateTime, b.DropOffDateTime)
}

// CanCancel reports whether the booking may still be cancelled: the stored
// status is a reservation and the service has not started yet.
func (b *Booking) CanCancel(now time.Time) bool {
	switch b.Status {
	case BookingStatusReserved, BookingStatusReservedByAgent:
		return now.Before(b.PickupDateTime)
	}
	return false
}

// CanReschedule mirrors CanCancel: dates and locations are editable only
// while the booking is an unstarted reservation.
func (b *Booking) CanReschedule(now time.Time) bool {
	return b.CanCancel(now)
}

// transitions is the explicit-action state machine. Time-derived moves
// (RESERVED* -> SERVICE_STARTED -> SERVICE_PROVIDED) go through DeriveStatus
// and are intentionally absent here.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusReserved:        {BookingStatusCancelled},
	BookingStatusReservedByAgent: {BookingStatusCancelled},
	BookingStatusServiceProvided: {BookingStatusFinished},
}

// CanTransition reports whether an explicit action may move a booking from
// one status to another. Terminal states have no outgoing transitions.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InitialStatus returns the status a new booking is created in, depending on
// who made it.
func InitialStatus(madeBy BookingMadeBy) BookingStatus {
	if madeBy == MadeBySupportAgent {
		return BookingStatusReservedByAgent
	}
	return BookingStatusReserved
}
