package ride

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

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateRideRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	ride, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateRide: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Error creating ride")
	}
	return utils.RespondWithMessage(c, http.StatusCreated, "Ride created successfully", ride)
}

func (h *Handler) List(c echo.Context) error {
	page, limit := utils.GetPageLimit(c)
	resp, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		c.Logger().Error("Handler.ListRides: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Error fetching rides")
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}
