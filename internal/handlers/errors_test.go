package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"parking-lot-api/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrInvalidPlate, http.StatusBadRequest},
		{services.ErrLotFull, http.StatusBadRequest},
		{services.ErrVehicleParked, http.StatusBadRequest},
		{services.ErrTicketClosed, http.StatusBadRequest},
		{services.ErrVehicleTypeInUse, http.StatusBadRequest},
		{services.ErrSlotOccupied, http.StatusBadRequest},
		{services.ErrTicketNotFound, http.StatusNotFound},
		{services.ErrVehicleNotFound, http.StatusNotFound},
		{services.ErrStaleWrite, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			he := httpError(tt.err, "something went wrong")
			assert.Equal(t, tt.want, he.Code)
		})
	}
}

func TestHTTPErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("check-in failed: %w", services.ErrLotFull)
	he := httpError(wrapped, "something went wrong")
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, services.ErrLotFull.Error(), he.Message)
}

func TestHTTPErrorHidesInternalDetail(t *testing.T) {
	he := httpError(errors.New("pq: relation does not exist"), "failed to list slots")
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Equal(t, "failed to list slots", he.Message)
}
