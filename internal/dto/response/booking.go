package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type BookingResponse struct {
	ID                string               `json:"id"`
	OrderNumber       string               `json:"order_number"`
	CarID             string               `json:"car_id"`
	CarName           string               `json:"car_name,omitempty"`
	ClientID          string               `json:"client_id"`
	PickupDateTime    time.Time            `json:"pickup_datetime"`
	DropOffDateTime   time.Time            `json:"dropoff_datetime"`
	PickupLocation    string               `json:"pickup_location,omitempty"`
	DropOffLocation   string               `json:"dropoff_location,omitempty"`
	PickupLocationID  string               `json:"pickup_location_id"`
	DropOffLocationID string               `json:"dropoff_location_id"`
	TotalPrice        float64              `json:"total_price"`
	Status            entity.BookingStatus `json:"status"`
	MadeBy            entity.BookingMadeBy `json:"made_by"`
	CreatedAt         time.Time            `json:"created_at"`
}

// BookingToResponse converts a booking, reporting its time-derived status at
// now rather than the stored explicit action.
func BookingToResponse(booking *entity.Booking, now time.Time) BookingResponse {
	return BookingResponse{
		ID:                booking.ID.String(),
		OrderNumber:       booking.OrderNumber,
		CarID:             booking.CarID.String(),
		ClientID:          booking.ClientID.String(),
		PickupDateTime:    booking.PickupDateTime,
		DropOffDateTime:   booking.DropOffDateTime,
		PickupLocationID:  booking.PickupLocationID.String(),
		DropOffLocationID: booking.DropOffLocationID.String(),
		TotalPrice:        booking.TotalPrice,
		Status:            booking.DerivedStatus(now),
		MadeBy:            booking.MadeBy,
		CreatedAt:         booking.CreatedAt,
	}
}
