package driver

import (
	"context"
	"errors"
	"fmt"

	"ride-hailing/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines storage for driver accounts.
type RepositoryInterface interface {
	// Create inserts the driver. A taken license number or email yields models.ErrConflict.
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	FindByID(ctx context.Context, driverID string) (*models.Driver, error)
	FindByEmail(ctx context.Context, email string) (*models.Driver, error)
	SetAvailability(ctx context.Context, driverID string, available bool) (*models.Driver, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const driverColumns = `id::text, name, vehicle_details, license_number, rating, availability_status,
	COALESCE(email, ''), COALESCE(password_hash, ''), created_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	d := &models.Driver{}
	if err := row.Scan(
		&d.ID, &d.Name, &d.VehicleDetails, &d.LicenseNumber, &d.Rating, &d.AvailabilityStatus,
		&d.Email, &d.PasswordHash, &d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repository) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (name, vehicle_details, license_number, email, password_hash)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING ` + driverColumns
	created, err := scanDriver(r.db.QueryRow(ctx, query,
		driver.Name, driver.VehicleDetails, driver.LicenseNumber, driver.Email, driver.PasswordHash,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", models.ErrConflict, pgErr.ConstraintName)
		}
		return nil, fmt.Errorf("repository.CreateDriver: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, driverID string) (*models.Driver, error) {
	if _, err := uuid.Parse(driverID); err != nil {
		return nil, models.ErrNotFound
	}
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindDriverByID: %w", err)
	}
	return d, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindDriverByEmail: %w", err)
	}
	return d, nil
}

func (r *Repository) SetAvailability(ctx context.Context, driverID string, available bool) (*models.Driver, error) {
	if _, err := uuid.Parse(driverID); err != nil {
		return nil, models.ErrNotFound
	}
	query := `UPDATE drivers SET availability_status = $1 WHERE id = $2 RETURNING ` + driverColumns
	d, err := scanDriver(r.db.QueryRow(ctx, query, available, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.SetAvailability: %w", err)
	}
	return d, nil
}
