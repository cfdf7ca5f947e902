package api

import (
	"errors"
	"fmt"
	"net/http"

	"ride-hailing/internal/models"

	"github.com/labstack/echo/v4"
)

const genericErrorMessage = "Something went wrong!"

// HTTPErrorHandler answers every error a handler returned without writing a response.
// *echo.HTTPError keeps its status; anything else is a 500 whose text is hidden in production.
func HTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
			if he.Internal != nil {
				c.Logger().Error(he.Internal)
			}
		} else {
			c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
			if production {
				message = genericErrorMessage
			}
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(code)
		} else {
			sendErr = c.JSON(code, models.NewErrorResponse(message))
		}
		if sendErr != nil {
			c.Logger().Error(sendErr)
		}
	}
}
