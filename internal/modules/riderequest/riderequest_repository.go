package riderequest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ride-hailing/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines methods for ride request storage.
type RepositoryInterface interface {
	Create(ctx context.Context, r *models.RideRequest) (*models.RideRequest, error)
	FindByID(ctx context.Context, id string) (*models.RideRequest, error)
	// Transition applies patch only if the stored status is one of from. When the status
	// does not match (or the row is missing) it returns models.ErrInvalidTransition.
	Transition(ctx context.Context, id string, from []models.RideRequestStatus, patch models.RideRequestPatch) (*models.RideRequest, error)
	// MarkPaid records payment of a COMPLETED, unpaid request, else models.ErrNotPayable.
	MarkPaid(ctx context.Context, id, method string) (*models.RideRequest, error)
	// ListByUser returns the user's requests in the given statuses, newest first.
	ListByUser(ctx context.Context, userID string, statuses []models.RideRequestStatus, limit int) ([]models.RideRequest, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const selectColumns = `
	id::text, user_id::text,
	origin_description, origin_lat, origin_lng,
	destination_description, destination_lat, destination_lng,
	vehicle_type, fare, status, COALESCE(driver_id, ''),
	requested_at, estimated_distance, estimated_duration,
	actual_pickup_time, actual_dropoff_time,
	payment_status, COALESCE(payment_method, ''), updated_at`

// Ids are Postgres uuids; anything else cannot match a row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func scanRideRequest(row pgx.Row) (*models.RideRequest, error) {
	r := &models.RideRequest{}
	var status string
	err := row.Scan(
		&r.ID, &r.UserID,
		&r.Origin.Description, &r.Origin.Location.Lat, &r.Origin.Location.Lng,
		&r.Destination.Description, &r.Destination.Location.Lat, &r.Destination.Location.Lng,
		&r.VehicleType, &r.Fare, &status, &r.DriverID,
		&r.RequestedAt, &r.EstimatedDistance, &r.EstimatedDuration,
		&r.ActualPickupTime, &r.ActualDropoffTime,
		&r.PaymentStatus, &r.PaymentMethod, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = models.RideRequestStatus(status)
	return r, nil
}

func (r *Repository) Create(ctx context.Context, req *models.RideRequest) (*models.RideRequest, error) {
	query := `
		INSERT INTO ride_requests (
			user_id,
			origin_description, origin_lat, origin_lng,
			destination_description, destination_lat, destination_lng,
			vehicle_type, fare, status,
			requested_at, estimated_distance, estimated_duration,
			payment_status, payment_method, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), $11)
		RETURNING ` + selectColumns

	created, err := scanRideRequest(r.db.QueryRow(ctx, query,
		req.UserID,
		req.Origin.Description, req.Origin.Location.Lat, req.Origin.Location.Lng,
		req.Destination.Description, req.Destination.Location.Lat, req.Destination.Location.Lng,
		req.VehicleType, req.Fare, string(req.Status),
		req.RequestedAt, req.EstimatedDistance, req.EstimatedDuration,
		req.PaymentStatus, req.PaymentMethod,
	))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateRideRequest: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.RideRequest, error) {
	if !isUUID(id) {
		return nil, models.ErrNotFound
	}
	query := `SELECT ` + selectColumns + ` FROM ride_requests WHERE id = $1`
	req, err := scanRideRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindRideRequestByID: %w", err)
	}
	return req, nil
}

func (r *Repository) Transition(ctx context.Context, id string, from []models.RideRequestStatus, patch models.RideRequestPatch) (*models.RideRequest, error) {
	if !isUUID(id) {
		return nil, models.ErrInvalidTransition
	}
	var setClauses []string
	var args []any
	argIdx := 1

	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Status != "" {
		set("status", string(patch.Status))
	}
	if patch.DriverID != nil {
		set("driver_id", *patch.DriverID)
	}
	if patch.ActualPickupTime != nil {
		set("actual_pickup_time", *patch.ActualPickupTime)
	}
	if patch.ActualDropoffTime != nil {
		set("actual_dropoff_time", *patch.ActualDropoffTime)
	}
	if patch.PaymentStatus != nil {
		set("payment_status", *patch.PaymentStatus)
	}
	if patch.PaymentMethod != nil {
		set("payment_method", *patch.PaymentMethod)
	}
	set("updated_at", time.Now())

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}
	args = append(args, id, fromStrings)

	query := fmt.Sprintf(`UPDATE ride_requests SET %s WHERE id = $%d AND status = ANY($%d) RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, argIdx+1, selectColumns)

	updated, err := scanRideRequest(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrInvalidTransition
		}
		return nil, fmt.Errorf("repository.TransitionRideRequest: %w", err)
	}
	return updated, nil
}

func (r *Repository) MarkPaid(ctx context.Context, id, method string) (*models.RideRequest, error) {
	if !isUUID(id) {
		return nil, models.ErrNotPayable
	}
	query := `
		UPDATE ride_requests
		SET payment_status = $1, payment_method = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4 AND payment_status = $5
		RETURNING ` + selectColumns

	updated, err := scanRideRequest(r.db.QueryRow(ctx, query,
		models.PaymentCompleted, method, id, string(models.RideRequestCompleted), models.PaymentPending,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotPayable
		}
		return nil, fmt.Errorf("repository.MarkRideRequestPaid: %w", err)
	}
	return updated, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string, statuses []models.RideRequestStatus, limit int) ([]models.RideRequest, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query := `SELECT ` + selectColumns + `
		FROM ride_requests
		WHERE user_id = $1 AND status = ANY($2)
		ORDER BY requested_at DESC
		LIMIT $3`
	rows, err := r.db.Query(ctx, query, userID, statusStrings, limit)
	if err != nil {
		return nil, fmt.Errorf("repository.ListRideRequestsByUser: %w", err)
	}
	defer rows.Close()

	requests := []models.RideRequest{}
	for rows.Next() {
		req, err := scanRideRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListRideRequestsByUser scan: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListRideRequestsByUser rows: %w", err)
	}
	return requests, nil
}
