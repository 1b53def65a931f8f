package repository

import (
	"context"
	"errors"
	"fmt"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrVersionConflict is returned when an optimistic update loses against a
// concurrent write. Callers retry the whole operation from validation.
var ErrVersionConflict = errors.New("booking version conflict")

const bookingColumns = `id, order_number, car_id, client_id, pickup_datetime, dropoff_datetime,
		pickup_location_id, dropoff_location_id, total_price, status, made_by, version,
		created_at, updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCarID(ctx context.Context, carID uuid.UUID) ([]*entity.Booking, error)
	FindActiveByCarID(ctx context.Context, carID uuid.UUID) ([]*entity.Booking, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)

	// Optimistic updates: both fail with ErrVersionConflict when the stored
	// version no longer matches.
	UpdateStatusWithVersion(ctx context.Context, bookingID uuid.UUID, version int64, status entity.BookingStatus) error
	UpdateScheduleWithVersion(ctx context.Context, booking *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, order_number, car_id, client_id, pickup_datetime, dropoff_datetime,
			pickup_location_id, dropoff_location_id, total_price, status, made_by, version,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderNumber,
		booking.CarID,
		booking.ClientID,
		booking.PickupDateTime,
		booking.DropOffDateTime,
		booking.PickupLocationID,
		booking.DropOffLocationID,
		booking.TotalPrice,
		booking.Status,
		booking.MadeBy,
		booking.Version,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_number", booking.OrderNumber),
			zap.String("car_id", booking.CarID.String()),
			zap.String("client_id", booking.ClientID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCarID(ctx context.Context, carID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE car_id = $1 ORDER BY pickup_datetime`

	return r.queryMany(ctx, "find bookings by car ID", query, carID)
}

// FindActiveByCarID returns the car's non-cancelled bookings. This is the
// working set for every availability and car-status decision; cancelled
// bookings drop out of it permanently.
func (r *bookingRepository) FindActiveByCarID(ctx context.Context, carID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE car_id = $1 AND status != 'CANCELLED'
		ORDER BY pickup_datetime`

	return r.queryMany(ctx, "find active bookings by car ID", query, carID)
}

func (r *bookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	return r.queryMany(ctx, "find bookings by client ID", query, clientID, limit, offset)
}

func (r *bookingRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE client_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, clientID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by client ID",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return 0, fmt.Errorf("count bookings by client ID %s: %w", clientID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	return r.queryMany(ctx, "find all bookings", query, limit, offset)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatusWithVersion(ctx context.Context, bookingID uuid.UUID, version int64, status entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, bookingID, version, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s status: %w", bookingID.String(), ErrVersionConflict)
	}

	return nil
}

func (r *bookingRepository) UpdateScheduleWithVersion(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET pickup_datetime = $3, dropoff_datetime = $4, pickup_location_id = $5,
		    dropoff_location_id = $6, total_price = $7, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Version,
		booking.PickupDateTime,
		booking.DropOffDateTime,
		booking.PickupLocationID,
		booking.DropOffLocationID,
		booking.TotalPrice,
	)

	if err != nil {
		r.log.Error("Failed to update booking schedule",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s schedule: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s schedule: %w", booking.ID.String(), ErrVersionConflict)
	}

	return nil
}

func (r *bookingRepository) queryMany(ctx context.Context, op, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanRow(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) scanRow(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderNumber,
		&booking.CarID,
		&booking.ClientID,
		&booking.PickupDateTime,
		&booking.DropOffDateTime,
		&booking.PickupLocationID,
		&booking.DropOffLocationID,
		&booking.TotalPrice,
		&booking.Status,
		&booking.MadeBy,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
