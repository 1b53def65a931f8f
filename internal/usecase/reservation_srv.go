package usecase

import (
	"context"
	"errors"
	"time"

	"car-rental/internal/data/cache"
	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/internal/events"
	"car-rental/internal/metrics"
	"car-rental/pkg/apperror"
	"car-rental/pkg/lock"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService owns the booking lifecycle: creating reservations,
// cancelling and rescheduling them, and reading them back with time-derived
// status.
type ReservationService interface {
	CreateBooking(ctx context.Context, actorID string, isSupportAgent bool, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, actorID string, isSupportAgent bool, bookingID string) (*response.BookingResponse, error)
	ListClientBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, actorID string, isSupportAgent bool, bookingID string) error
	RescheduleBooking(ctx context.Context, actorID string, isSupportAgent bool, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)
	FinishBooking(ctx context.Context, bookingID string) error
}

type reservationService struct {
	repo         *repository.Repository
	availability AvailabilityService
	syncer       *statusSyncer
	locks        *lock.KeyedMutex
	cache        *cache.AvailabilityCache
	publisher    *events.Publisher
	log          *zap.Logger
	clock        func() time.Time
}

func NewReservationService(
	repo *repository.Repository,
	availability AvailabilityService,
	locks *lock.KeyedMutex,
	availCache *cache.AvailabilityCache,
	publisher *events.Publisher,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:         repo,
		availability: availability,
		syncer:       newStatusSyncer(repo, log, nil),
		locks:        locks,
		cache:        availCache,
		publisher:    publisher,
		log:          log.With(zap.String("service", "reservation")),
		clock:        time.Now,
	}
}

func (s *reservationService) CreateBooking(ctx context.Context, actorID string, isSupportAgent bool, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	interval, err := ParseInterval(req.PickupDateTime, req.DropOffDateTime)
	if err != nil {
		return nil, err
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, apperror.Validation("invalid car ID format %s", req.CarID)
	}

	// Support agents book on behalf of a client; regular clients always book
	// for themselves.
	clientID, madeBy, err := resolveClient(actorID, isSupportAgent, req.ClientID)
	if err != nil {
		return nil, err
	}

	// Agents hand us an arbitrary client ID, so check it against the client
	// registry before booking anything in that client's name.
	if isSupportAgent && req.ClientID != "" {
		client, err := s.repo.Client.FindByID(ctx, clientID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if client == nil {
			return nil, apperror.NotFound("client %s not found", req.ClientID)
		}
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if car == nil {
		return nil, apperror.NotFound("car %s not found", req.CarID)
	}

	if !car.IsBookable() {
		metrics.IncReservationConflict("car_unavailable")
		return nil, apperror.Conflict("car %s %s is unavailable for booking", car.Brand, car.Model)
	}

	pickupLocationID, dropOffLocationID, err := s.resolveLocations(ctx, req.PickupLocationID, req.DropOffLocationID)
	if err != nil {
		return nil, err
	}

	// The availability check and the writes behind it form a check-then-act
	// race; serialize them per car so two overlapping requests cannot both
	// pass the check.
	s.locks.Lock(carID.String())
	defer s.locks.Unlock(carID.String())

	available, err := s.availability.IsAvailable(ctx, carID, interval, nil)
	if err != nil {
		return nil, err
	}
	if !available {
		metrics.IncReservationConflict("overlap")
		return nil, apperror.Conflict("car is already booked between %s and %s",
			interval.Start.Format(time.RFC3339), interval.End.Format(time.RFC3339))
	}

	now := s.clock()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:       utils.GenerateOrderNumber(),
		CarID:             carID,
		ClientID:          clientID,
		PickupDateTime:    interval.Start,
		DropOffDateTime:   interval.End,
		PickupLocationID:  pickupLocationID,
		DropOffLocationID: dropOffLocationID,
		TotalPrice:        float64(interval.WholeDays()) * car.PricePerDay,
		Status:            entity.InitialStatus(madeBy),
		MadeBy:            madeBy,
		Version:           1,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("car_id", req.CarID),
			zap.String("client_id", clientID.String()),
		)
		return nil, apperror.Internal(err)
	}

	if err := s.syncer.SyncCarStatus(ctx, carID); err != nil {
		s.log.Error("Failed to sync car status after create",
			zap.Error(err),
			zap.String("car_id", req.CarID),
		)
	}

	s.cache.Invalidate(ctx, carID)
	metrics.IncReservationCreated(string(madeBy))
	s.publisher.Publish(ctx, events.QueueBookingCreated, bookingEvent(booking, now))

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_number", booking.OrderNumber),
		zap.String("car_id", req.CarID),
		zap.String("client_id", clientID.String()),
		zap.Float64("total_price", booking.TotalPrice),
		zap.String("made_by", string(madeBy)),
	)

	resp := response.BookingToResponse(booking, now)
	return &resp, nil
}

func (s *reservationService) GetBooking(ctx context.Context, actorID string, isSupportAgent bool, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findOwnedBooking(ctx, actorID, isSupportAgent, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, s.clock())
	return &resp, nil
}

func (s *reservationService) ListClientBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		return nil, apperror.Validation("invalid client ID format %s", clientID)
	}

	bookings, err := s.repo.Booking.FindByClientID(ctx, clientUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Booking.CountByClientID(ctx, clientUUID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return s.paginatedResponse(bookings, req, total), nil
}

func (s *reservationService) ListAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return s.paginatedResponse(bookings, req, total), nil
}

func (s *reservationService) CancelBooking(ctx context.Context, actorID string, isSupportAgent bool, bookingID string) error {
	booking, err := s.findOwnedBooking(ctx, actorID, isSupportAgent, bookingID)
	if err != nil {
		return err
	}

	// Re-cancelling an already-cancelled booking is a no-op success so
	// callers can retry without special-casing.
	if booking.Status == entity.BookingStatusCancelled {
		return nil
	}

	now := s.clock()
	if !booking.CanCancel(now) {
		metrics.IncReservationConflict("cancel_too_late")
		if !now.Before(booking.PickupDateTime) {
			return apperror.Conflict("booking %s has already started and cannot be cancelled", bookingID)
		}
		return apperror.Conflict("booking %s is in status %s and cannot be cancelled", bookingID, booking.Status)
	}

	s.locks.Lock(booking.CarID.String())
	defer s.locks.Unlock(booking.CarID.String())

	if err := s.repo.Booking.UpdateStatusWithVersion(ctx, booking.ID, booking.Version, entity.BookingStatusCancelled); err != nil {
		if isVersionConflict(err) {
			return apperror.Concurrency("booking %s was modified concurrently, retry the cancellation", bookingID)
		}
		return apperror.Internal(err)
	}

	if err := s.syncer.SyncCarStatus(ctx, booking.CarID); err != nil {
		s.log.Error("Failed to sync car status after cancel",
			zap.Error(err),
			zap.String("car_id", booking.CarID.String()),
		)
	}

	booking.Status = entity.BookingStatusCancelled
	s.cache.Invalidate(ctx, booking.CarID)
	metrics.IncReservationCancelled()
	s.publisher.Publish(ctx, events.QueueBookingCancelled, bookingEvent(booking, now))

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_number", booking.OrderNumber),
		zap.String("car_id", booking.CarID.String()),
	)

	return nil
}

func (s *reservationService) RescheduleBooking(ctx context.Context, actorID string, isSupportAgent bool, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Empty() {
		return nil, apperror.Validation("reschedule request contains no changes")
	}

	booking, err := s.findOwnedBooking(ctx, actorID, isSupportAgent, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if !booking.CanReschedule(now) {
		metrics.IncReservationConflict("reschedule_too_late")
		return nil, apperror.Conflict("booking %s can no longer be edited", bookingID)
	}

	// Unchanged fields keep their stored values; a date change is validated
	// as a full interval.
	pickup := booking.PickupDateTime
	dropoff := booking.DropOffDateTime
	if req.PickupDateTime != nil {
		if pickup, err = parseInstant(*req.PickupDateTime, "pickup_datetime"); err != nil {
			return nil, err
		}
	}
	if req.DropOffDateTime != nil {
		if dropoff, err = parseInstant(*req.DropOffDateTime, "dropoff_datetime"); err != nil {
			return nil, err
		}
	}
	if !pickup.Before(dropoff) {
		return nil, apperror.Validation("pickup must be strictly before dropoff")
	}
	interval := entity.NewInterval(pickup, dropoff)

	pickupLocationID := booking.PickupLocationID
	dropOffLocationID := booking.DropOffLocationID
	if req.PickupLocationID != nil || req.DropOffLocationID != nil {
		pickupStr := pickupLocationID.String()
		dropoffStr := dropOffLocationID.String()
		if req.PickupLocationID != nil {
			pickupStr = *req.PickupLocationID
		}
		if req.DropOffLocationID != nil {
			dropoffStr = *req.DropOffLocationID
		}
		if pickupLocationID, dropOffLocationID, err = s.resolveLocations(ctx, pickupStr, dropoffStr); err != nil {
			return nil, err
		}
	}

	car, err := s.repo.Car.FindByID(ctx, booking.CarID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if car == nil {
		return nil, apperror.NotFound("car %s not found", booking.CarID.String())
	}

	s.locks.Lock(booking.CarID.String())
	defer s.locks.Unlock(booking.CarID.String())

	if req.HasDateChange() {
		available, err := s.availability.IsAvailable(ctx, booking.CarID, interval, &booking.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			metrics.IncReservationConflict("overlap")
			return nil, apperror.Conflict("car is already booked between %s and %s",
				interval.Start.Format(time.RFC3339), interval.End.Format(time.RFC3339))
		}
	}

	booking.PickupDateTime = interval.Start
	booking.DropOffDateTime = interval.End
	booking.PickupLocationID = pickupLocationID
	booking.DropOffLocationID = dropOffLocationID
	// Price follows the car's current rate, not the rate at original booking
	// time.
	booking.TotalPrice = float64(interval.WholeDays()) * car.PricePerDay

	if err := s.repo.Booking.UpdateScheduleWithVersion(ctx, booking); err != nil {
		if isVersionConflict(err) {
			return nil, apperror.Concurrency("booking %s was modified concurrently, retry the reschedule", bookingID)
		}
		return nil, apperror.Internal(err)
	}
	booking.Version++

	if err := s.syncer.SyncCarStatus(ctx, booking.CarID); err != nil {
		s.log.Error("Failed to sync car status after reschedule",
			zap.Error(err),
			zap.String("car_id", booking.CarID.String()),
		)
	}

	s.cache.Invalidate(ctx, booking.CarID)
	metrics.IncReservationRescheduled()
	s.publisher.Publish(ctx, events.QueueBookingRescheduled, bookingEvent(booking, now))

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", bookingID),
		zap.String("car_id", booking.CarID.String()),
		zap.Time("pickup", booking.PickupDateTime),
		zap.Time("dropoff", booking.DropOffDateTime),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking, now)
	return &resp, nil
}

// FinishBooking is the explicit closeout signal moving a provided service to
// BOOKING_FINISHED. It arrives from feedback submission or staff closeout.
func (s *reservationService) FinishBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperror.Validation("invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if booking == nil {
		return apperror.NotFound("booking %s not found", bookingID)
	}

	if booking.Status == entity.BookingStatusFinished {
		return nil
	}

	derived := booking.DerivedStatus(s.clock())
	if !entity.CanTransition(derived, entity.BookingStatusFinished) {
		return apperror.Conflict("booking %s is in status %s and cannot be finished", bookingID, derived)
	}

	if err := s.repo.Booking.UpdateStatusWithVersion(ctx, booking.ID, booking.Version, entity.BookingStatusFinished); err != nil {
		if isVersionConflict(err) {
			return apperror.Concurrency("booking %s was modified concurrently, retry the closeout", bookingID)
		}
		return apperror.Internal(err)
	}

	if err := s.syncer.SyncCarStatus(ctx, booking.CarID); err != nil {
		s.log.Error("Failed to sync car status after finish",
			zap.Error(err),
			zap.String("car_id", booking.CarID.String()),
		)
	}
	s.cache.Invalidate(ctx, booking.CarID)

	s.log.Info("Booking finished",
		zap.String("booking_id", bookingID),
		zap.String("order_number", booking.OrderNumber),
	)

	return nil
}

// findOwnedBooking loads a booking and enforces ownership: clients see only
// their own bookings, support agents see everything. Foreign bookings are
// reported as not found rather than forbidden.
func (s *reservationService) findOwnedBooking(ctx context.Context, actorID string, isSupportAgent bool, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.Validation("invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking %s not found", bookingID)
	}

	if !isSupportAgent {
		actorUUID, err := uuid.Parse(actorID)
		if err != nil || booking.ClientID != actorUUID {
			return nil, apperror.NotFound("booking %s not found", bookingID)
		}
	}

	return booking, nil
}

func (s *reservationService) resolveLocations(ctx context.Context, pickupID, dropoffID string) (uuid.UUID, uuid.UUID, error) {
	pickup, err := uuid.Parse(pickupID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.Validation("invalid pickup location ID format %s", pickupID)
	}
	dropoff, err := uuid.Parse(dropoffID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.Validation("invalid dropoff location ID format %s", dropoffID)
	}

	for _, id := range []uuid.UUID{pickup, dropoff} {
		location, err := s.repo.Location.FindByID(ctx, id)
		if err != nil {
			return uuid.Nil, uuid.Nil, apperror.Internal(err)
		}
		if location == nil {
			return uuid.Nil, uuid.Nil, apperror.NotFound("location %s not found", id.String())
		}
	}

	return pickup, dropoff, nil
}

func (s *reservationService) paginatedResponse(bookings []*entity.Booking, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	now := s.clock()
	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = response.BookingToResponse(booking, now)
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total)
}

func resolveClient(actorID string, isSupportAgent bool, requestedClientID string) (uuid.UUID, entity.BookingMadeBy, error) {
	if isSupportAgent && requestedClientID != "" {
		clientID, err := uuid.Parse(requestedClientID)
		if err != nil {
			return uuid.Nil, "", apperror.Validation("invalid client ID format %s", requestedClientID)
		}
		return clientID, entity.MadeBySupportAgent, nil
	}

	clientID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, "", apperror.Validation("invalid client ID format %s", actorID)
	}
	madeBy := entity.MadeByClient
	if isSupportAgent {
		madeBy = entity.MadeBySupportAgent
	}
	return clientID, madeBy, nil
}

func parseInstant(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid %s: %s is not an RFC3339 timestamp", field, value)
	}
	return t, nil
}

// ParseInterval parses a pickup/dropoff pair of RFC3339 timestamps into a
// half-open interval, rejecting empty or inverted ranges.
func ParseInterval(pickupStr, dropoffStr string) (entity.Interval, error) {
	pickup, err := parseInstant(pickupStr, "pickup_datetime")
	if err != nil {
		return entity.Interval{}, err
	}
	dropoff, err := parseInstant(dropoffStr, "dropoff_datetime")
	if err != nil {
		return entity.Interval{}, err
	}
	if !pickup.Before(dropoff) {
		return entity.Interval{}, apperror.Validation("pickup must be strictly before dropoff")
	}
	return entity.NewInterval(pickup, dropoff), nil
}

func bookingEvent(booking *entity.Booking, now time.Time) events.BookingEvent {
	return events.BookingEvent{
		BookingID:       booking.ID.String(),
		OrderNumber:     booking.OrderNumber,
		CarID:           booking.CarID.String(),
		ClientID:        booking.ClientID.String(),
		PickupDateTime:  booking.PickupDateTime,
		DropOffDateTime: booking.DropOffDateTime,
		TotalPrice:      booking.TotalPrice,
		Status:          string(booking.Status),
		MadeBy:          string(booking.MadeBy),
		OccurredAt:      now,
	}
}

func isVersionConflict(err error) bool {
	return errors.Is(err, repository.ErrVersionConflict)
}
