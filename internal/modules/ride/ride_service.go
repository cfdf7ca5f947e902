package ride

import (
	"context"
	"fmt"
	"strings"

	"ride-hailing/internal/models"
)

type ServiceInterface interface {
	Create(ctx context.Context, req models.CreateRideRequest) (*models.Ride, error)
	List(ctx context.Context, page, limit int) (*models.RideListResponse, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) ServiceInterface {
	return &Service{repo: repo}
}

// Create stores a ride record as given. User and driver ids are taken on trust.
func (s *Service) Create(ctx context.Context, req models.CreateRideRequest) (*models.Ride, error) {
	status := req.Status
	if status == "" {
		status = models.RideStatusPending
	}
	ride, err := s.repo.Create(ctx, &models.Ride{
		UserID:          strings.TrimSpace(req.User),
		DriverID:        strings.TrimSpace(req.Driver),
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Status:          status,
		Fare:            req.Fare,
	})
	if err != nil {
		return nil, fmt.Errorf("service.CreateRide: %w", err)
	}
	return ride, nil
}

func (s *Service) List(ctx context.Context, page, limit int) (*models.RideListResponse, error) {
	rides, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("service.ListRides: %w", err)
	}
	return &models.RideListResponse{Rides: rides, Page: page, Limit: limit, Total: total}, nil
}
