package handlers

import (
	"net/http"

	"parking-lot-api/internal/jobs"
	"parking-lot-api/internal/logging"
	"parking-lot-api/internal/models"
	"parking-lot-api/internal/services"

	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	ticketService *services.TicketService
	jobClient     *jobs.Client
}

func NewTicketHandler(ticketService *services.TicketService, jobClient *jobs.Client) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		jobClient:     jobClient,
	}
}

func (h *TicketHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	tickets, err := h.ticketService.List(ctx)
	if err != nil {
		return httpError(err, "failed to list tickets")
	}

	responses := make([]models.TicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = t.ToResponse()
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *TicketHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	ticket, err := h.ticketService.GetByID(ctx, id)
	if err != nil {
		return httpError(err, "failed to get ticket")
	}
	return c.JSON(http.StatusOK, ticket.ToResponse())
}

// CheckIn opens a ticket for a plate, registering the vehicle on first sight.
func (h *TicketHandler) CheckIn(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.CheckInInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if input.Plate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "plate is required")
	}

	ticket, err := h.ticketService.CheckIn(ctx, input)
	if err != nil {
		return httpError(err, "failed to check in")
	}
	return c.JSON(http.StatusCreated, ticket.ToResponse())
}

// CheckOut closes the ticket and returns it with the computed fee.
func (h *TicketHandler) CheckOut(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	ticket, err := h.ticketService.CheckOut(ctx, id)
	if err != nil {
		return httpError(err, "failed to check out")
	}

	h.enqueueReceipt(c, ticket)

	return c.JSON(http.StatusOK, ticket.ToResponse())
}

type checkOutByPlateInput struct {
	Plate string `json:"plate"`
}

func (h *TicketHandler) CheckOutByPlate(c echo.Context) error {
	ctx := c.Request().Context()

	var input checkOutByPlateInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if input.Plate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "plate is required")
	}

	ticket, err := h.ticketService.CheckOutByPlate(ctx, input.Plate)
	if err != nil {
		return httpError(err, "failed to check out")
	}

	h.enqueueReceipt(c, ticket)

	return c.JSON(http.StatusOK, ticket.ToResponse())
}

func (h *TicketHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.ticketService.Delete(ctx, id); err != nil {
		return httpError(err, "failed to delete ticket")
	}
	return c.NoContent(http.StatusNoContent)
}

// enqueueReceipt is best-effort: the check-out already committed, so a Redis
// outage only costs the notification, not the billing.
func (h *TicketHandler) enqueueReceipt(c echo.Context, ticket *models.Ticket) {
	if h.jobClient == nil || ticket.TotalFee == nil {
		return
	}

	ctx := c.Request().Context()
	if err := h.jobClient.EnqueueReceipt(ctx, ticket.ID, ticket.Vehicle.Plate, *ticket.TotalFee); err != nil {
		logging.Warn(ctx).
			Err(err).
			Uint("ticket_id", ticket.ID).
			Msg("failed to enqueue receipt")
	}
}
