package services

import (
	"context"
	"testing"

	"parking-lot-api/internal/clock"
	"parking-lot-api/internal/database"
	"parking-lot-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleTypeNameMustBeUnique(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	svc := NewVehicleTypeService()

	_, err := svc.Create(ctx, VehicleTypeInput{Name: "Car"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, VehicleTypeInput{Name: "Car"})
	assert.ErrorIs(t, err, ErrTypeNameTaken)
}

func TestVehicleTypeDeleteBlockedWhenInUse(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	typeID := seedType(t, "Car")

	vehicles := NewVehicleService()
	_, err := vehicles.Create(ctx, VehicleInput{
		Plate:         "ABC1234",
		Model:         "Gol",
		VehicleTypeID: typeID,
	})
	require.NoError(t, err)

	types := NewVehicleTypeService()
	assert.ErrorIs(t, types.Delete(ctx, typeID), ErrVehicleTypeInUse)

	require.NoError(t, database.DB.Where("plate = ?", "ABC1234").Delete(&models.Vehicle{}).Error)
	assert.NoError(t, types.Delete(ctx, typeID))
}

func TestVehicleCreateRequiresExistingType(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	svc := NewVehicleService()
	_, err := svc.Create(ctx, VehicleInput{
		Plate:         "ABC1234",
		Model:         "Gol",
		VehicleTypeID: 999,
	})
	assert.ErrorIs(t, err, ErrVehicleTypeNotFound)
}

func TestVehiclePlateMustBeUnique(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	typeID := seedType(t, "Car")
	svc := NewVehicleService()

	input := VehicleInput{Plate: "ABC1234", Model: "Gol", VehicleTypeID: typeID}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	assert.ErrorIs(t, err, ErrPlateTaken)
}

func TestVehicleDeleteBlockedByTicketHistory(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	typeID := seedType(t, "Car")
	seedSlots(t, typeID, 1)

	tickets := newTestTicketService(clock.NewSystem())
	ticket, err := tickets.CheckIn(ctx, CheckInInput{
		Plate:         "ABC1234",
		Model:         "Gol",
		VehicleTypeID: typeID,
	})
	require.NoError(t, err)

	_, err = tickets.CheckOut(ctx, ticket.ID)
	require.NoError(t, err)

	// Closed tickets are the billing record, so the vehicle still blocks.
	vehicles := NewVehicleService()
	assert.ErrorIs(t, vehicles.Delete(ctx, ticket.VehicleID), ErrVehicleHasTickets)
}

func TestSlotCreateStartsFree(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	typeID := seedType(t, "Car")
	svc := NewSlotService()

	slot, err := svc.Create(ctx, SlotInput{
		Number:        12,
		Floor:         "2",
		Sector:        "B",
		VehicleTypeID: typeID,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, slot.Number)
	assert.False(t, slot.Occupied)
	assert.Nil(t, slot.VehicleID)
}

func TestSlotNumberMustBeUnique(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	typeID := seedType(t, "Car")
	svc := NewSlotService()

	input := SlotInput{Number: 1, VehicleTypeID: typeID}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	assert.ErrorIs(t, err, ErrSlotNumberTaken)
}

func TestSlotDeleteBlockedWhenOccupied(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	typeID := seedType(t, "Car")
	slotIDs := seedSlots(t, typeID, 1)

	tickets := newTestTicketService(clock.NewSystem())
	ticket, err := tickets.CheckIn(ctx, CheckInInput{
		Plate:         "ABC1234",
		Model:         "Gol",
		VehicleTypeID: typeID,
	})
	require.NoError(t, err)

	slots := NewSlotService()
	assert.ErrorIs(t, slots.Delete(ctx, slotIDs[0]), ErrSlotOccupied)

	_, err = tickets.CheckOut(ctx, ticket.ID)
	require.NoError(t, err)

	assert.NoError(t, slots.Delete(ctx, slotIDs[0]))
}

func TestListFreeSlots(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	typeID := seedType(t, "Car")
	seedSlots(t, typeID, 1, 2, 3)

	tickets := newTestTicketService(clock.NewSystem())
	_, err := tickets.CheckIn(ctx, CheckInInput{
		Plate:         "ABC1234",
		Model:         "Gol",
		VehicleTypeID: typeID,
	})
	require.NoError(t, err)

	slots := NewSlotService()
	free, err := slots.ListFree(ctx)
	require.NoError(t, err)

	require.Len(t, free, 2)
	assert.Equal(t, 2, free[0].Number)
	assert.Equal(t, 3, free[1].Number)
}
