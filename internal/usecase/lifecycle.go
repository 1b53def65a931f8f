package usecase

import (
	"context"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusSyncer keeps a car's status flag consistent with its bookings. Every
// writer goes through SyncCarStatus instead of setting the flag directly, so
// two booking operations can never race the car into a contradictory status.
type statusSyncer struct {
	repo  *repository.Repository
	log   *zap.Logger
	clock func() time.Time
}

func newStatusSyncer(repo *repository.Repository, log *zap.Logger, clock func() time.Time) *statusSyncer {
	if clock == nil {
		clock = time.Now
	}
	return &statusSyncer{
		repo:  repo,
		log:   log.With(zap.String("component", "status_syncer")),
		clock: clock,
	}
}

// SyncCarStatus re-derives the car's status from its current bookings: BOOKED
// iff at least one occupying booking is current or upcoming, AVAILABLE
// otherwise. The full re-scan keeps the flag correct even when support staff
// created overlapping exceptions. A manual UNAVAILABLE override is left
// untouched.
func (s *statusSyncer) SyncCarStatus(ctx context.Context, carID uuid.UUID) error {
	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		return apperror.Internal(err)
	}
	if car == nil {
		return apperror.NotFound("car %s not found", carID.String())
	}

	if car.Status == entity.CarStatusUnavailable {
		return nil
	}

	bookings, err := s.repo.Booking.FindActiveByCarID(ctx, carID)
	if err != nil {
		return apperror.Internal(err)
	}

	now := s.clock()
	want := entity.CarStatusAvailable
	for _, booking := range bookings {
		if booking.OccupiesCarAt(now) {
			want = entity.CarStatusBooked
			break
		}
	}

	if car.Status == want {
		return nil
	}

	if err := s.repo.Car.UpdateStatus(ctx, carID, want); err != nil {
		return apperror.Internal(err)
	}

	s.log.Debug("Car status synchronized",
		zap.String("car_id", carID.String()),
		zap.String("from", string(car.Status)),
		zap.String("to", string(want)),
	)

	return nil
}
