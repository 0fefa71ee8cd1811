package handlers

import (
	"net/http"

	"parking-lot-api/internal/models"
	"parking-lot-api/internal/services"

	"github.com/labstack/echo/v4"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	vehicles, err := h.vehicleService.List(ctx)
	if err != nil {
		return httpError(err, "failed to list vehicles")
	}

	responses := make([]models.VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = v.ToResponse()
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *VehicleHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	vehicle, err := h.vehicleService.GetByID(ctx, id)
	if err != nil {
		return httpError(err, "failed to get vehicle")
	}
	return c.JSON(http.StatusOK, vehicle.ToResponse())
}

func (h *VehicleHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.VehicleInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	vehicle, err := h.vehicleService.Create(ctx, input)
	if err != nil {
		return httpError(err, "failed to create vehicle")
	}
	return c.JSON(http.StatusCreated, vehicle.ToResponse())
}

func (h *VehicleHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input services.VehicleInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.vehicleService.Update(ctx, id, input); err != nil {
		return httpError(err, "failed to update vehicle")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VehicleHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.vehicleService.Delete(ctx, id); err != nil {
		return httpError(err, "failed to delete vehicle")
	}
	return c.NoContent(http.StatusNoContent)
}
