package handlers

import (
	"net/http"

	"parking-lot-api/internal/models"
	"parking-lot-api/internal/services"

	"github.com/labstack/echo/v4"
)

type SlotHandler struct {
	slotService *services.SlotService
}

func NewSlotHandler(slotService *services.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

func (h *SlotHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	slots, err := h.slotService.List(ctx)
	if err != nil {
		return httpError(err, "failed to list slots")
	}
	return c.JSON(http.StatusOK, slotResponses(slots))
}

func (h *SlotHandler) ListFree(c echo.Context) error {
	ctx := c.Request().Context()

	slots, err := h.slotService.ListFree(ctx)
	if err != nil {
		return httpError(err, "failed to list free slots")
	}
	return c.JSON(http.StatusOK, slotResponses(slots))
}

func (h *SlotHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	slot, err := h.slotService.GetByID(ctx, id)
	if err != nil {
		return httpError(err, "failed to get slot")
	}
	return c.JSON(http.StatusOK, slot.ToResponse())
}

func (h *SlotHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.SlotInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	slot, err := h.slotService.Create(ctx, input)
	if err != nil {
		return httpError(err, "failed to create slot")
	}
	return c.JSON(http.StatusCreated, slot.ToResponse())
}

func (h *SlotHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input services.SlotInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.slotService.Update(ctx, id, input); err != nil {
		return httpError(err, "failed to update slot")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SlotHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.slotService.Delete(ctx, id); err != nil {
		return httpError(err, "failed to delete slot")
	}
	return c.NoContent(http.StatusNoContent)
}

func slotResponses(slots []models.Slot) []models.SlotResponse {
	responses := make([]models.SlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = s.ToResponse()
	}
	return responses
}
