package ride

import (
	"context"
	"fmt"

	"ride-hailing/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface stores legacy ride records.
type RepositoryInterface interface {
	// Create inserts the ride and appends its id to the rider's ride history.
	Create(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	List(ctx context.Context, limit, offset int) ([]models.Ride, int, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const rideColumns = `id::text, user_id, driver_id, pickup_location, dropoff_location, status, fare, created_at`

func (r *Repository) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("repository.CreateRide.BeginTx: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	created := &models.Ride{}
	query := `
		INSERT INTO rides (user_id, driver_id, pickup_location, dropoff_location, status, fare)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + rideColumns
	err = tx.QueryRow(ctx, query,
		ride.UserID, ride.DriverID, ride.PickupLocation, ride.DropoffLocation, ride.Status, ride.Fare,
	).Scan(
		&created.ID, &created.UserID, &created.DriverID, &created.PickupLocation,
		&created.DropoffLocation, &created.Status, &created.Fare, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateRide: %w", err)
	}

	// The user reference is not checked; only a known rider gets the history entry.
	if _, err := uuid.Parse(ride.UserID); err == nil {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET ride_history = array_append(ride_history, $1::uuid) WHERE id = $2`,
			created.ID, ride.UserID,
		); err != nil {
			return nil, fmt.Errorf("repository.CreateRide.AppendHistory: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CreateRide.Commit: %w", err)
	}
	return created, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Ride, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rides`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListRides.Count: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+rideColumns+` FROM rides ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListRides: %w", err)
	}
	defer rows.Close()

	rides := []models.Ride{}
	for rows.Next() {
		var ride models.Ride
		if err := rows.Scan(
			&ride.ID, &ride.UserID, &ride.DriverID, &ride.PickupLocation,
			&ride.DropoffLocation, &ride.Status, &ride.Fare, &ride.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("repository.ListRides.Scan: %w", err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.ListRides.Rows: %w", err)
	}
	return rides, total, nil
}
