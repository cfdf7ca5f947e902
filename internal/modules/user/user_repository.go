package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ride-hailing/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines methods for interacting with rider storage.
type RepositoryInterface interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	// FindByEmail expects an already lowercased email and returns the password hash too.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts the user and fills ID and timestamps. A taken email yields models.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const userColumns = `id::text, name, email, COALESCE(password_hash, ''), COALESCE(phone_number, ''),
	COALESCE(profile_image, ''), auth_provider, ride_history::text[], created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.PhoneNumber,
		&user.ProfileImage, &user.AuthProvider, &user.RideHistory, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// isUniqueViolation reports a Postgres unique constraint failure (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *Repository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, models.ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return user, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, phone_number, profile_image, auth_provider)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
		RETURNING ` + userColumns
	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.PhoneNumber, user.ProfileImage, user.AuthProvider,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}
	return created, nil
}

func (r *Repository) Update(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error) {
	// Build query dynamically based on fields provided in UserUpdateData
	var setClauses []string
	var args []any
	argIdx := 1

	if data.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *data.Name)
		argIdx++
	}
	if data.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *data.Email)
		argIdx++
	}
	if data.PhoneNumber != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone_number = $%d", argIdx))
		args = append(args, *data.PhoneNumber)
		argIdx++
	}
	if data.ProfileImage != nil {
		setClauses = append(setClauses, fmt.Sprintf("profile_image = $%d", argIdx))
		args = append(args, *data.ProfileImage)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, userID) // No fields to update, return current user
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, models.ErrNotFound
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, userID) // For WHERE clause

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, userColumns)

	updatedUser, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.UpdateUser: %w", err)
	}
	return updatedUser, nil
}
