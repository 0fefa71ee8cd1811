package services

import "errors"

// Validation errors: the input itself is malformed.
var (
	ErrInvalidName       = errors.New("vehicle type name must be between 1 and 50 characters")
	ErrInvalidPlate      = errors.New("plate must be between 7 and 8 characters")
	ErrInvalidModel      = errors.New("model must be between 2 and 50 characters")
	ErrInvalidSlotNumber = errors.New("slot number must be between 1 and 999")
)

// Not-found errors: the referenced entity does not exist.
var (
	ErrVehicleTypeNotFound = errors.New("vehicle type not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrTicketNotFound      = errors.New("ticket not found")
)

// Business-rule violations.
var (
	ErrTypeNameTaken     = errors.New("a vehicle type with this name already exists")
	ErrPlateTaken        = errors.New("a vehicle with this plate already exists")
	ErrSlotNumberTaken   = errors.New("a slot with this number already exists")
	ErrVehicleTypeInUse  = errors.New("vehicle type is referenced by vehicles")
	ErrVehicleHasTickets = errors.New("vehicle is referenced by tickets")
	ErrSlotOccupied      = errors.New("slot is occupied")
	ErrVehicleParked     = errors.New("vehicle already parked")
	ErrLotFull           = errors.New("parking lot is full")
	ErrTicketClosed      = errors.New("ticket already closed")
	ErrNoOpenTicket      = errors.New("vehicle has no open ticket")
)

// ErrStaleWrite is returned when a mutation raced a concurrent change and the
// one re-check retry still found inconsistent state.
var ErrStaleWrite = errors.New("record changed concurrently")
