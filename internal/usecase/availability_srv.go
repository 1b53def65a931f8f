package usecase

import (
	"context"
	"sort"
	"time"

	"car-rental/internal/data/cache"
	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService is the read side of the booking engine: it answers
// whether a car is free for an interval and which calendar days a car is
// occupied.
type AvailabilityService interface {
	// IsAvailable reports whether no non-cancelled booking for the car
	// overlaps the interval. excludeBookingID ignores one booking, used when
	// an edit re-validates against itself.
	IsAvailable(ctx context.Context, carID uuid.UUID, interval entity.Interval, excludeBookingID *uuid.UUID) (bool, error)

	// OccupiedDays returns every calendar day touched by the car's
	// non-cancelled bookings, deduplicated and sorted ascending as
	// YYYY-MM-DD. A car with no bookings yields an empty list; an unknown
	// car yields a not-found error.
	OccupiedDays(ctx context.Context, carID uuid.UUID) ([]string, error)
}

type availabilityService struct {
	repo  *repository.Repository
	cache *cache.AvailabilityCache
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, availCache *cache.AvailabilityCache, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		cache: availCache,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) IsAvailable(ctx context.Context, carID uuid.UUID, interval entity.Interval, excludeBookingID *uuid.UUID) (bool, error) {
	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if car == nil {
		return false, apperror.NotFound("car %s not found", carID.String())
	}

	// Linear scan: a car carries tens of bookings at most, so an interval
	// tree would buy nothing here.
	bookings, err := s.repo.Booking.FindActiveByCarID(ctx, carID)
	if err != nil {
		return false, apperror.Internal(err)
	}

	for _, booking := range bookings {
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}
		if booking.Interval().Overlaps(interval) {
			return false, nil
		}
	}

	return true, nil
}

func (s *availabilityService) OccupiedDays(ctx context.Context, carID uuid.UUID) ([]string, error) {
	if days, ok := s.cache.GetOccupiedDays(ctx, carID); ok {
		return days, nil
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if car == nil {
		return nil, apperror.NotFound("car %s not found", carID.String())
	}

	bookings, err := s.repo.Booking.FindActiveByCarID(ctx, carID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := make(map[string]struct{})
	for _, booking := range bookings {
		for _, day := range booking.Interval().Days() {
			seen[day.Format(time.DateOnly)] = struct{}{}
		}
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)

	s.cache.SetOccupiedDays(ctx, carID, days)

	return days, nil
}
