package models

import "time"

type RideRequestStatus string

const (
	RideRequestPending    RideRequestStatus = "PENDING"
	RideRequestAccepted   RideRequestStatus = "ACCEPTED"
	RideRequestRejected   RideRequestStatus = "REJECTED"
	RideRequestCancelled  RideRequestStatus = "CANCELLED"
	RideRequestInProgress RideRequestStatus = "IN_PROGRESS"
	RideRequestCompleted  RideRequestStatus = "COMPLETED"
)

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
)

type LatLng struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Place is a free-text description plus an optional coordinate.
type Place struct {
	Description string `json:"description" validate:"required,max=500"`
	Location    LatLng `json:"location"`
}

// RideRequest is a rider's booking attempt, tracked through its status.
type RideRequest struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user"`
	Origin            Place             `json:"origin"`
	Destination       Place             `json:"destination"`
	VehicleType       string            `json:"vehicleType"`
	Fare              float64           `json:"fare"`
	Status            RideRequestStatus `json:"status"`
	DriverID          string            `json:"driverId,omitempty"`
	RequestedAt       time.Time         `json:"requestedAt"`
	EstimatedDistance float64           `json:"estimatedDistance,omitempty"`
	EstimatedDuration float64           `json:"estimatedDuration,omitempty"`
	ActualPickupTime  *time.Time        `json:"actualPickupTime,omitempty"`
	ActualDropoffTime *time.Time        `json:"actualDropoffTime,omitempty"`
	PaymentStatus     string            `json:"paymentStatus"`
	PaymentMethod     string            `json:"paymentMethod,omitempty"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// RideRequestView is a RideRequest with the assigned driver denormalized into it.
type RideRequestView struct {
	RideRequest
	Driver *FixtureDriver `json:"driver,omitempty"`
}

type CreateRideRequestRequest struct {
	Origin            Place   `json:"origin"`
	Destination       Place   `json:"destination"`
	VehicleType       string  `json:"vehicleType" validate:"required,max=50"`
	Fare              float64 `json:"fare" validate:"gt=0"`
	EstimatedDistance float64 `json:"estimatedDistance" validate:"gte=0"`
	EstimatedDuration float64 `json:"estimatedDuration" validate:"gte=0"`
	PaymentMethod     string  `json:"paymentMethod" validate:"omitempty,max=50"`
}

type CreateRideRequestResponse struct {
	RideRequest      *RideRequest `json:"rideRequest"`
	AvailableDrivers int          `json:"availableDrivers"`
}

type PayRideRequestRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,max=50"`
}

type RideHistoryResponse struct {
	Rides []RideRequestView `json:"rides"`
}

// RideRequestPatch lists the fields a status transition may write. Nil fields are untouched.
type RideRequestPatch struct {
	Status            RideRequestStatus
	DriverID          *string
	ActualPickupTime  *time.Time
	ActualDropoffTime *time.Time
	PaymentStatus     *string
	PaymentMethod     *string
}

// RideRequestEvent is published on every status change.
type RideRequestEvent struct {
	Type        string          `json:"type"` // e.g. "ride_request.accepted"
	RideRequest RideRequestView `json:"rideRequest"`
	OccurredAt  time.Time       `json:"occurredAt"`
}
