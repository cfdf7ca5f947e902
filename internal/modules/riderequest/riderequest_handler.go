package riderequest

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

func (h *Handler) Create(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.CreateRideRequestRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Create(c.Request().Context(), riderID, req)
	if err != nil {
		return err
	}

	return utils.RespondWithMessage(c, http.StatusCreated, "Ride request created successfully", resp)
}

func (h *Handler) Get(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), c.Param("id"), riderID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, view)
}

func (h *Handler) Cancel(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	view, err := h.service.Cancel(c.Request().Context(), c.Param("id"), riderID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.RespondWithMessage(c, http.StatusOK, "Ride request cancelled successfully", view)
}

func (h *Handler) Start(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	view, err := h.service.Start(c.Request().Context(), c.Param("id"), riderID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.RespondWithMessage(c, http.StatusOK, "Ride started", view)
}

func (h *Handler) Complete(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	view, err := h.service.Complete(c.Request().Context(), c.Param("id"), riderID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.RespondWithMessage(c, http.StatusOK, "Ride completed successfully", view)
}

func (h *Handler) Pay(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.PayRideRequestRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Pay(c.Request().Context(), c.Param("id"), riderID, req.PaymentMethod)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.RespondWithMessage(c, http.StatusOK, "Payment recorded", view)
}

func (h *Handler) History(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	rides, err := h.service.History(c.Request().Context(), riderID)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, models.RideHistoryResponse{Rides: rides})
}

func (h *Handler) handleError(c echo.Context, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return utils.RespondWithError(c, http.StatusNotFound, "Ride request not found")
	}
	return utils.HandleServiceError(c, err)
}
