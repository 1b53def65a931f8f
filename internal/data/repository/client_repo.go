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

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	FindByEmail(ctx context.Context, email string) (*entity.Client, error)
}

type clientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClientRepository(db database.PgxIface, log *zap.Logger) ClientRepository {
	return &clientRepository{
		db:  db,
		log: log.With(zap.String("repository", "client")),
	}
}

// Create inserts a new client record into the database
func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, full_name, email, phone, driver_license,
		                     is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		client.ID,
		client.FullName,
		client.Email,
		client.Phone,
		client.DriverLicense,
		client.IsActive,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create client",
			zap.Error(err),
			zap.String("email", client.Email),
		)
		return fmt.Errorf("create client %s: %w", client.Email, err)
	}

	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	query := `
		SELECT id, full_name, email, phone, driver_license,
		       is_active, created_at, updated_at, deleted_at
		FROM clients
		WHERE id = $1 AND deleted_at IS NULL
	`

	var client entity.Client
	err := r.db.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.FullName,
		&client.Email,
		&client.Phone,
		&client.DriverLicense,
		&client.IsActive,
		&client.CreatedAt,
		&client.UpdatedAt,
		&client.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find client by ID",
			zap.Error(err),
			zap.String("client_id", id.String()),
		)
		return nil, fmt.Errorf("find client by ID %s: %w", id.String(), err)
	}

	return &client, nil
}

func (r *clientRepository) FindByEmail(ctx context.Context, email string) (*entity.Client, error) {
	query := `
		SELECT id, full_name, email, phone, driver_license,
		       is_active, created_at, updated_at, deleted_at
		FROM clients
		WHERE email = $1 AND deleted_at IS NULL
	`

	var client entity.Client
	err := r.db.QueryRow(ctx, query, email).Scan(
		&client.ID,
		&client.FullName,
		&client.Email,
		&client.Phone,
		&client.DriverLicense,
		&client.IsActive,
		&client.CreatedAt,
		&client.UpdatedAt,
		&client.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find client by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find client by email %s: %w", email, err)
	}

	return &client, nil
}
