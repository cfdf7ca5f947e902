package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Account roles carried in the credential.
const (
	RoleRider  = "rider"
	RoleDriver = "driver"
)

type JwtCustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Validate is called by jwt.Parse after the registered claims (exp, nbf) were checked.
// A token without a subject id is useless to every handler, so it is rejected here.
func (c *JwtCustomClaims) Validate() error {
	if c.UserID == "" {
		return errors.New("token is missing the userId claim")
	}
	return nil
}
