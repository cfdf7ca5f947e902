package models

import "time"

// User is a rider account.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"` // always stored lowercase
	PasswordHash string    `json:"-" db:"password_hash"`
	PhoneNumber  string    `json:"phoneNumber,omitempty" db:"phone_number"`
	ProfileImage string    `json:"profileImage,omitempty" db:"profile_image"`
	AuthProvider string    `json:"authProvider" db:"auth_provider"`
	RideHistory  []string  `json:"rideHistory" db:"ride_history"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is bound from JSON or from a multipart form (when an image is
// uploaded). Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name        string `json:"name" form:"name" validate:"omitempty,min=2,max=100"`
	Email       string `json:"email" form:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"omitempty,min=7,max=20"`
}

// UserUpdateData is what the service hands to the repository after normalisation.
type UserUpdateData struct {
	Name         *string
	Email        *string
	PhoneNumber  *string
	ProfileImage *string
}
