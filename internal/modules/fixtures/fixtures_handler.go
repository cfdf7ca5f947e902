package fixtures

import (
	"net/http"

	"ride-hailing/pkg/utils"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	directory *Directory
}

func NewHandler(directory *Directory) *Handler {
	return &Handler{directory: directory}
}

// List serves GET /api/drivers/fixtures, optionally filtered by ?vehicleType=.
func (h *Handler) List(c echo.Context) error {
	if vt := c.QueryParam("vehicleType"); vt != "" {
		drivers := h.directory.FilterByVehicleType(vt)
		if drivers == nil {
			return utils.RespondWithError(c, http.StatusNotFound, "No drivers for vehicle type "+vt)
		}
		return utils.RespondWithJSON(c, http.StatusOK, drivers)
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.directory.All())
}
