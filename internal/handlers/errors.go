package handlers

import (
	"errors"
	"net/http"

	"parking-lot-api/internal/services"

	"github.com/labstack/echo/v4"
)

// Business-rule violations (duplicate plate or number, full lot, vehicle
// already parked, blocked deletes) are client mistakes, so they map to 400
// alongside plain validation failures. Stale writes map to 409.
var badRequestErrors = []error{
	services.ErrInvalidName,
	services.ErrInvalidPlate,
	services.ErrInvalidModel,
	services.ErrInvalidSlotNumber,
	services.ErrTypeNameTaken,
	services.ErrPlateTaken,
	services.ErrSlotNumberTaken,
	services.ErrVehicleTypeInUse,
	services.ErrVehicleHasTickets,
	services.ErrSlotOccupied,
	services.ErrVehicleParked,
	services.ErrLotFull,
	services.ErrTicketClosed,
	services.ErrNoOpenTicket,
}

var notFoundErrors = []error{
	services.ErrVehicleTypeNotFound,
	services.ErrVehicleNotFound,
	services.ErrSlotNotFound,
	services.ErrTicketNotFound,
}

// httpError translates a service error into the echo.HTTPError the central
// error handler renders. Unrecognized errors become opaque 500s.
func httpError(err error, fallback string) *echo.HTTPError {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusBadRequest, target.Error())
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusNotFound, target.Error())
		}
	}
	if errors.Is(err, services.ErrStaleWrite) {
		return echo.NewHTTPError(http.StatusConflict, services.ErrStaleWrite.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}
