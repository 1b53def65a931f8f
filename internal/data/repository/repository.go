package repository

import (
	"car-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Car      CarRepository
	Booking  BookingRepository
	Location LocationRepository
	Client   ClientRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Car:      NewCarRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Location: NewLocationRepository(db, log),
		Client:   NewClientRepository(db, log),
	}
}
