package fare

import (
	"net/http"

	"ride-hailing/internal/models"
	"ride-hailing/pkg/utils"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Estimate serves GET /api/rides/fare-estimate?distance=<metres>&duration=<seconds>.
func (h *Handler) Estimate(c echo.Context) error {
	var req models.FareEstimateRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "distance and duration must be numbers")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	return utils.RespondWithJSON(c, http.StatusOK, h.service.Estimate(req.Distance, req.Duration))
}
