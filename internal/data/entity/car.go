package entity

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusBooked      CarStatus = "BOOKED"
	CarStatusUnavailable CarStatus = "UNAVAILABLE"
)

type Car struct {
	Base
	Brand       string    `db:"brand"`
	Model       string    `db:"model"`
	Year        int       `db:"year"`
	PricePerDay float64   `db:"price_per_day"`
	Status      CarStatus `db:"status"`
}

// IsBookable reports whether the car accepts new reservations at all.
// UNAVAILABLE is a manual staff override and wins over everything else.
func (c *Car) IsBookable() bool {
	return c.Status != CarStatusUnavailable
}
