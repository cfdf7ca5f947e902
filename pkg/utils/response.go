package utils

import (
	"errors"
	"net/http"

	"ride-hailing/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON wraps data in the success envelope.
func RespondWithJSON(c echo.Context, code int, data any) error {
	return c.JSON(code, models.Envelope{Status: models.StatusSuccess, Data: data})
}

// RespondWithMessage is RespondWithJSON plus a human readable message.
func RespondWithMessage(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, models.Envelope{Status: models.StatusSuccess, Message: message, Data: data})
}

func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.NewErrorResponse(message))
}

// HandleServiceError maps the domain sentinels to HTTP responses. Anything unknown is
// returned as-is so the top-level error handler logs it and answers 500.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, models.ErrInvalidToken):
		return RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, models.ErrForbidden):
		return RespondWithError(c, http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, models.ErrInvalidTransition):
		return RespondWithError(c, http.StatusConflict, models.ErrInvalidTransition.Error())
	case errors.Is(err, models.ErrNotPayable):
		return RespondWithError(c, http.StatusConflict, models.ErrNotPayable.Error())
	case errors.Is(err, models.ErrFeatureDisabled):
		return RespondWithError(c, http.StatusNotImplemented, models.ErrFeatureDisabled.Error())
	}
	return err
}
