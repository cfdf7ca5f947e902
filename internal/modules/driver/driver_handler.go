package driver

import (
	"errors"
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

func (h *Handler) Register(c echo.Context) error {
	var req models.RegisterDriverRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Driver with this license number or email already exists")
		}
		c.Logger().Error("Handler.RegisterDriver: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Error registering driver")
	}
	return utils.RespondWithMessage(c, http.StatusCreated, "Driver registered successfully", d)
}

func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	authResponse, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "Driver not found")
		}
		if errors.Is(err, models.ErrInvalidCredentials) {
			return utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		c.Logger().Error("Handler.DriverLogin: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Error logging in driver")
	}
	return utils.RespondWithJSON(c, http.StatusOK, authResponse)
}

func (h *Handler) GetProfile(c echo.Context) error {
	driverID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	d, err := h.service.GetProfile(c.Request().Context(), driverID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "Driver profile not found")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

// SetAvailability serves PUT /api/drivers/availability with {"available": bool}.
func (h *Handler) SetAvailability(c echo.Context) error {
	driverID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	var req models.AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.service.SetAvailability(c.Request().Context(), driverID, *req.Available)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "Driver profile not found")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithMessage(c, http.StatusOK, "Availability updated", d)
}
