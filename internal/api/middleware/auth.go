package middleware

import (
	"errors"
	"net/http"

	"ride-hailing/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Context keys set after a credential was accepted.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// JWTAuth configures echo's JWT middleware for the rider/driver credentials.
// The token is read from the Authorization header, or from ?token= for websocket clients
// that cannot set headers.
func JWTAuth(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.JwtCustomClaims)
		},
		SigningKey:  []byte(jwtSecretKey),
		TokenLookup: "header:Authorization:Bearer ,query:token",

		SuccessHandler: func(c echo.Context) {
			// "user" is the default context key used by echo-jwt
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.JwtCustomClaims)

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextUserRole, claims.Role)
			c.Logger().Debugf("JWT auth successful for %s %s", claims.Role, claims.UserID)
		},

		// Every failure is a 401 and the downstream handler is never reached.
		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Warnf("JWT error: %v", err)

			// No extractor found a token: missing header, wrong scheme, empty ?token=.
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return c.JSON(http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
			}
			if errors.Is(err, jwt.ErrTokenMalformed) {
				return c.JSON(http.StatusUnauthorized, models.NewErrorResponse("Token is malformed"))
			} else if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, models.NewErrorResponse("Token has expired"))
			} else if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
				return c.JSON(http.StatusUnauthorized, models.NewErrorResponse("Invalid token signature"))
			}

			return c.JSON(http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
		},
	}
	return echojwt.WithConfig(config)
}

// RequireRole rejects authenticated callers whose credential carries a different role.
// It must run after JWTAuth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get(ContextUserRole).(string)
			if got != role {
				return c.JSON(http.StatusForbidden, models.NewErrorResponse("This action requires a "+role+" account"))
			}
			return next(c)
		}
	}
}
