package models

import "time"

// Driver is a registered driver account. Email and password are optional: drivers
// registered without them can never log in.
type Driver struct {
	ID                 string    `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	VehicleDetails     string    `json:"vehicleDetails" db:"vehicle_details"`
	LicenseNumber      string    `json:"licenseNumber" db:"license_number"`
	Rating             float64   `json:"rating" db:"rating"`
	AvailabilityStatus bool      `json:"availabilityStatus" db:"availability_status"`
	Email              string    `json:"email,omitempty" db:"email"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

type RegisterDriverRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	VehicleDetails string `json:"vehicleDetails" validate:"required,max=200"`
	LicenseNumber  string `json:"licenseNumber" validate:"required,min=4,max=32"`
	Email          string `json:"email" validate:"required_with=Password,omitempty,email"`
	Password       string `json:"password" validate:"required_with=Email,omitempty,min=6,max=72"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// FixtureDriver is a sample driver used to simulate matching. It is never persisted.
type FixtureDriver struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	VehicleDetails string  `json:"vehicleDetails"`
	VehicleType    string  `json:"vehicleType"`
	Rating         float64 `json:"rating"`
	IsAvailable    bool    `json:"isAvailable"`
	Location       LatLng  `json:"location"`
	ProfileImage   string  `json:"profileImage"`
}
