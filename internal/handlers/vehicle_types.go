package handlers

import (
	"net/http"
	"strconv"

	"parking-lot-api/internal/models"
	"parking-lot-api/internal/services"

	"github.com/labstack/echo/v4"
)

type VehicleTypeHandler struct {
	typeService *services.VehicleTypeService
}

func NewVehicleTypeHandler(typeService *services.VehicleTypeService) *VehicleTypeHandler {
	return &VehicleTypeHandler{typeService: typeService}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *VehicleTypeHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	types, err := h.typeService.List(ctx)
	if err != nil {
		return httpError(err, "failed to list vehicle types")
	}

	responses := make([]models.VehicleTypeResponse, len(types))
	for i, t := range types {
		responses[i] = t.ToResponse()
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *VehicleTypeHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	vt, err := h.typeService.GetByID(ctx, id)
	if err != nil {
		return httpError(err, "failed to get vehicle type")
	}
	return c.JSON(http.StatusOK, vt.ToResponse())
}

func (h *VehicleTypeHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.VehicleTypeInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	vt, err := h.typeService.Create(ctx, input)
	if err != nil {
		return httpError(err, "failed to create vehicle type")
	}
	return c.JSON(http.StatusCreated, vt.ToResponse())
}

func (h *VehicleTypeHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input services.VehicleTypeInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.typeService.Update(ctx, id, input); err != nil {
		return httpError(err, "failed to update vehicle type")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VehicleTypeHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.typeService.Delete(ctx, id); err != nil {
		return httpError(err, "failed to delete vehicle type")
	}
	return c.NoContent(http.StatusNoContent)
}
