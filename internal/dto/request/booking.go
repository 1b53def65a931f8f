package request

type CreateBookingRequest struct {
	CarID             string `json:"car_id" validate:"required,uuid4"`
	PickupDateTime    string `json:"pickup_datetime" validate:"required"`
	DropOffDateTime   string `json:"dropoff_datetime" validate:"required"`
	PickupLocationID  string `json:"pickup_location_id" validate:"required,uuid4"`
	DropOffLocationID string `json:"dropoff_location_id" validate:"required,uuid4"`
	// ClientID is accepted only from support agents booking on behalf of a
	// client; for regular clients it is taken from the auth context.
	ClientID string `json:"client_id,omitempty" validate:"omitempty,uuid4"`
}

// RescheduleBookingRequest edits an unstarted booking in place. Dates must be
// changed as a pair; locations may change independently.
type RescheduleBookingRequest struct {
	PickupDateTime    *string `json:"pickup_datetime,omitempty"`
	DropOffDateTime   *string `json:"dropoff_datetime,omitempty"`
	PickupLocationID  *string `json:"pickup_location_id,omitempty" validate:"omitempty,uuid4"`
	DropOffLocationID *string `json:"dropoff_location_id,omitempty" validate:"omitempty,uuid4"`
}

func (r *RescheduleBookingRequest) HasDateChange() bool {
	return r.PickupDateTime != nil || r.DropOffDateTime != nil
}

func (r *RescheduleBookingRequest) Empty() bool {
	return r.PickupDateTime == nil && r.DropOffDateTime == nil &&
		r.PickupLocationID == nil && r.DropOffLocationID == nil
}
