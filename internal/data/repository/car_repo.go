package repository

import (
	"context"
	"fmt"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CarRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Car, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, carID uuid.UUID, status entity.CarStatus) error
}

type carRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCarRepository(db database.PgxIface, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `
		SELECT id, brand, model, year, price_per_day, status, created_at, updated_at, deleted_at
		FROM cars
		WHERE id = $1 AND deleted_at IS NULL
	`

	var car entity.Car
	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.Brand,
		&car.Model,
		&car.Year,
		&car.PricePerDay,
		&car.Status,
		&car.CreatedAt,
		&car.UpdatedAt,
		&car.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by ID",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("find car by ID %s: %w", id.String(), err)
	}

	return &car, nil
}

func (r *carRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Car, error) {
	query := `
		SELECT id, brand, model, year, price_per_day, status, created_at, updated_at, deleted_at
		FROM cars
		WHERE deleted_at IS NULL
		ORDER BY brand, model
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find cars",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find cars: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		var car entity.Car
		err := rows.Scan(
			&car.ID,
			&car.Brand,
			&car.Model,
			&car.Year,
			&car.PricePerDay,
			&car.Status,
			&car.CreatedAt,
			&car.UpdatedAt,
			&car.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan car row", zap.Error(err))
			return nil, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

func (r *carRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM cars WHERE deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count cars", zap.Error(err))
		return 0, fmt.Errorf("count cars: %w", err)
	}

	return count, nil
}

func (r *carRepository) UpdateStatus(ctx context.Context, carID uuid.UUID, status entity.CarStatus) error {
	query := `UPDATE cars SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, carID, status)
	if err != nil {
		r.log.Error("Failed to update car status",
			zap.Error(err),
			zap.String("car_id", carID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update car %s status to %s: %w", carID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", carID.String())
	}

	return nil
}
