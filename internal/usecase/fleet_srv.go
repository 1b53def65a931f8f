package usecase

import (
	"context"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/apperror"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// searchScanLimit bounds the fleet scan in SearchAvailable. The fleet is a
// catalog of hundreds of cars at most, not an open-ended inventory.
const searchScanLimit = 1000

// FleetService is the catalog-facing surface: browsing cars, searching for
// availability, and the manual staff status override.
type FleetService interface {
	ListCars(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CarResponse], error)
	GetCar(ctx context.Context, carID string) (*response.CarResponse, error)
	SearchAvailable(ctx context.Context, pickup, dropoff string) ([]response.CarResponse, error)
	UpdateCarStatus(ctx context.Context, carID string, req *request.UpdateCarStatusRequest) (*response.CarResponse, error)
}

type fleetService struct {
	repo         *repository.Repository
	availability AvailabilityService
	syncer       *statusSyncer
	log          *zap.Logger
}

func NewFleetService(repo *repository.Repository, availability AvailabilityService, log *zap.Logger) FleetService {
	return &fleetService{
		repo:         repo,
		availability: availability,
		syncer:       newStatusSyncer(repo, log, nil),
		log:          log.With(zap.String("service", "fleet")),
	}
}

func (s *fleetService) ListCars(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CarResponse], error) {
	cars, err := s.repo.Car.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Car.Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]response.CarResponse, len(cars))
	for i, car := range cars {
		items[i] = response.CarToResponse(car)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *fleetService) GetCar(ctx context.Context, carID string) (*response.CarResponse, error) {
	id, err := uuid.Parse(carID)
	if err != nil {
		return nil, apperror.Validation("invalid car ID format %s", carID)
	}

	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if car == nil {
		return nil, apperror.NotFound("car %s not found", carID)
	}

	resp := response.CarToResponse(car)
	return &resp, nil
}

// SearchAvailable returns every bookable car that is free for the requested
// interval, powering the customer search screen.
func (s *fleetService) SearchAvailable(ctx context.Context, pickup, dropoff string) ([]response.CarResponse, error) {
	interval, err := ParseInterval(pickup, dropoff)
	if err != nil {
		return nil, err
	}

	cars, err := s.repo.Car.FindAll(ctx, searchScanLimit, 0)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	results := make([]response.CarResponse, 0, len(cars))
	for _, car := range cars {
		if !car.IsBookable() {
			continue
		}

		available, err := s.availability.IsAvailable(ctx, car.ID, interval, nil)
		if err != nil {
			return nil, err
		}
		if available {
			results = append(results, response.CarToResponse(car))
		}
	}

	return results, nil
}

// UpdateCarStatus is the staff override. UNAVAILABLE is set directly and
// blocks new reservations; releasing the override re-derives the status from
// the car's bookings instead of trusting the request.
func (s *fleetService) UpdateCarStatus(ctx context.Context, carID string, req *request.UpdateCarStatusRequest) (*response.CarResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(carID)
	if err != nil {
		return nil, apperror.Validation("invalid car ID format %s", carID)
	}

	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if car == nil {
		return nil, apperror.NotFound("car %s not found", carID)
	}

	switch entity.CarStatus(req.Status) {
	case entity.CarStatusUnavailable:
		if car.Status != entity.CarStatusUnavailable {
			if err := s.repo.Car.UpdateStatus(ctx, id, entity.CarStatusUnavailable); err != nil {
				return nil, apperror.Internal(err)
			}
		}
	case entity.CarStatusAvailable:
		// Clear the override first, then let the syncer decide between
		// AVAILABLE and BOOKED from the booking set.
		if car.Status == entity.CarStatusUnavailable {
			if err := s.repo.Car.UpdateStatus(ctx, id, entity.CarStatusAvailable); err != nil {
				return nil, apperror.Internal(err)
			}
		}
		if err := s.syncer.SyncCarStatus(ctx, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Car.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if updated == nil {
		return nil, apperror.NotFound("car %s not found", carID)
	}

	s.log.Info("Car status updated by staff",
		zap.String("car_id", carID),
		zap.String("from", string(car.Status)),
		zap.String("to", string(updated.Status)),
	)

	resp := response.CarToResponse(updated)
	return &resp, nil
}
