package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ride-hailing/internal/auth"
	"ride-hailing/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type ServiceInterface interface {
	Register(ctx context.Context, req models.RegisterDriverRequest) (*models.Driver, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, driverID string) (*models.Driver, error)
	SetAvailability(ctx context.Context, driverID string, available bool) (*models.Driver, error)
}

type Service struct {
	repo   RepositoryInterface
	tokens *auth.TokenIssuer
}

func NewService(repo RepositoryInterface, tokens *auth.TokenIssuer) ServiceInterface {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a driver. Email and password are optional but come as a pair;
// a driver registered without them cannot log in.
func (s *Service) Register(ctx context.Context, req models.RegisterDriverRequest) (*models.Driver, error) {
	d := &models.Driver{
		Name:           strings.TrimSpace(req.Name),
		VehicleDetails: strings.TrimSpace(req.VehicleDetails),
		LicenseNumber:  strings.TrimSpace(req.LicenseNumber),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("service.RegisterDriver.HashPassword: %w", err)
		}
		d.PasswordHash = string(hash)
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service.RegisterDriver: %w", err)
	}
	created.PasswordHash = ""
	return created, nil
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	d, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service.DriverLogin: %w", err)
	}
	if d.PasswordHash == "" {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(d.ID, d.Email, models.RoleDriver)
	if err != nil {
		return nil, fmt.Errorf("service.DriverLogin.Issue: %w", err)
	}
	d.PasswordHash = ""
	return &models.AuthResponse{Token: token, User: d}, nil
}

func (s *Service) GetProfile(ctx context.Context, driverID string) (*models.Driver, error) {
	d, err := s.repo.FindByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service.GetDriverProfile: %w", err)
	}
	d.PasswordHash = ""
	return d, nil
}

func (s *Service) SetAvailability(ctx context.Context, driverID string, available bool) (*models.Driver, error) {
	d, err := s.repo.SetAvailability(ctx, driverID, available)
	if err != nil {
		return nil, fmt.Errorf("service.SetAvailability: %w", err)
	}
	d.PasswordHash = ""
	return d, nil
}
