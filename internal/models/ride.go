package models

import "time"

// Legacy ride statuses.
const (
	RideStatusPending    = "Pending"
	RideStatusInProgress = "In Progress"
	RideStatusCompleted  = "Completed"
)

// Ride is the legacy, directly created trip record. User and driver references are
// not checked for existence.
type Ride struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user" db:"user_id"`
	DriverID        string    `json:"driver" db:"driver_id"`
	PickupLocation  string    `json:"pickupLocation" db:"pickup_location"`
	DropoffLocation string    `json:"dropoffLocation" db:"dropoff_location"`
	Status          string    `json:"status" db:"status"`
	Fare            float64   `json:"fare" db:"fare"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

type CreateRideRequest struct {
	User            string  `json:"user" validate:"required"`
	Driver          string  `json:"driver" validate:"required"`
	PickupLocation  string  `json:"pickupLocation" validate:"required"`
	DropoffLocation string  `json:"dropoffLocation" validate:"required"`
	Fare            float64 `json:"fare" validate:"gte=0"`
	Status          string  `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
}

type RideListResponse struct {
	Rides []Ride `json:"rides"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
}
