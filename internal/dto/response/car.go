package response

import (
	"car-rental/internal/data/entity"
)

type CarResponse struct {
	ID          string           `json:"id"`
	Brand       string           `json:"brand"`
	Model       string           `json:"model"`
	Year        int              `json:"year"`
	PricePerDay float64          `json:"price_per_day"`
	Status      entity.CarStatus `json:"status"`
}

type AvailabilityResponse struct {
	CarID     string `json:"car_id"`
	Pickup    string `json:"pickup"`
	Dropoff   string `json:"dropoff"`
	Available bool   `json:"available"`
}

type OccupiedDaysResponse struct {
	CarID string   `json:"car_id"`
	Days  []string `json:"days"`
}

func CarToResponse(car *entity.Car) CarResponse {
	return CarResponse{
		ID:          car.ID.String(),
		Brand:       car.Brand,
		Model:       car.Model,
		Year:        car.Year,
		PricePerDay: car.PricePerDay,
		Status:      car.Status,
	}
}
