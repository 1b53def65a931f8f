package usecase

import (
	"car-rental/internal/data/cache"
	"car-rental/internal/data/repository"
	"car-rental/internal/events"
	"car-rental/pkg/lock"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Reservation  ReservationService
	Fleet        FleetService
}

func NewService(
	repo *repository.Repository,
	availCache *cache.AvailabilityCache,
	publisher *events.Publisher,
	log *zap.Logger,
) *Service {
	locks := lock.NewKeyedMutex()
	availability := NewAvailabilityService(repo, availCache, log)

	return &Service{
		Availability: availability,
		Reservation:  NewReservationService(repo, availability, locks, availCache, publisher, log),
		Fleet:        NewFleetService(repo, availability, log),
	}
}
