package utils

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GetUserIDFromContext reads the subject id that the JWT middleware stored.
func GetUserIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return userID, nil
}

// ExtractUserInfo returns the authenticated subject id and role. The error is an
// *echo.HTTPError that handlers can return directly.
func ExtractUserInfo(c echo.Context) (string, string, error) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		return "", "", err
	}
	role, _ := c.Get("userRole").(string)
	return userID, role, nil
}

// GetPageLimit reads ?page= and ?limit=, falling back to page 1 and the default limit.
func GetPageLimit(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
