package services

import (
	"context"
	"errors"
	"strings"

	"parking-lot-api/internal/clock"
	"parking-lot-api/internal/database"
	"parking-lot-api/internal/logging"
	"parking-lot-api/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	checkInCounter  metric.Int64Counter
	checkOutCounter metric.Int64Counter
	feeHistogram    metric.Float64Histogram
)

type TicketService struct {
	clock    clock.Clock
	rate     float64
	minHours int
}

func NewTicketService(clk clock.Clock, ratePerHour float64, minBillableHours int) *TicketService {
	var err error
	checkInCounter, err = meter.Int64Counter(
		"tickets.checked_in",
		metric.WithDescription("Total number of vehicles checked in"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create check-in counter")
	}

	checkOutCounter, err = meter.Int64Counter(
		"tickets.checked_out",
		metric.WithDescription("Total number of vehicles checked out"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create check-out counter")
	}

	feeHistogram, err = meter.Float64Histogram(
		"tickets.fee",
		metric.WithDescription("Fee charged per closed ticket"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create fee histogram")
	}

	return &TicketService{
		clock:    clk,
		rate:     ratePerHour,
		minHours: minBillableHours,
	}
}

type CheckInInput struct {
	Plate         string `json:"plate"`
	Model         string `json:"model"`
	VehicleTypeID uint   `json:"vehicle_type_id"`
}

func (s *TicketService) List(ctx context.Context) ([]models.Ticket, error) {
	ctx, span := tracer.Start(ctx, "ticket.list")
	defer span.End()

	var tickets []models.Ticket
	if err := database.DB.WithContext(ctx).
		Preload("Vehicle.VehicleType").
		Preload("Slot").
		Order("id").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *TicketService) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	ctx, span := tracer.Start(ctx, "ticket.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("ticket.id", int64(id)))

	var ticket models.Ticket
	if err := database.DB.WithContext(ctx).
		Preload("Vehicle.VehicleType").
		Preload("Slot").
		First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// CheckIn opens a ticket for the plate, registering the vehicle on first
// sight. Vehicle lookup/creation, the open-ticket guard, slot allocation,
// ticket creation and slot occupation are one transaction: a full lot or a
// lost slot rolls everything back, including the new vehicle row.
func (s *TicketService) CheckIn(ctx context.Context, input CheckInInput) (*models.Ticket, error) {
	ctx, span := tracer.Start(ctx, "ticket.check_in")
	defer span.End()

	span.SetAttributes(attribute.String("vehicle.plate", input.Plate))

	if err := validatePlate(input.Plate); err != nil {
		return nil, err
	}

	plate := strings.TrimSpace(input.Plate)
	var ticket models.Ticket

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The vehicle row is locked so same-plate check-ins serialize here;
		// without the lock two transactions pass the open-ticket count below
		// and SKIP LOCKED hands them different slots.
		var vehicle models.Vehicle
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("plate = ?", plate).
			First(&vehicle).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vehicle, err = createVehicle(tx, VehicleInput{
				Plate:         plate,
				Model:         input.Model,
				VehicleTypeID: input.VehicleTypeID,
			})
			if err != nil {
				return err
			}
		case err != nil:
			return err
		}

		var open int64
		if err := tx.Model(&models.Ticket{}).
			Where("vehicle_id = ? AND exit_time IS NULL", vehicle.ID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrVehicleParked
		}

		slot, err := findFreeSlot(tx)
		if err != nil {
			return err
		}

		ticket = models.Ticket{
			VehicleID: vehicle.ID,
			SlotID:    slot.ID,
			EntryTime: s.clock.Now(),
			Paid:      false,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			// The partial unique index on open tickets is the backstop for
			// writers that raced past the count.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrVehicleParked
			}
			return err
		}

		return occupySlot(tx, slot.ID, vehicle.ID)
	})
	if err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).
		Preload("Vehicle.VehicleType").
		Preload("Slot").
		First(&ticket, ticket.ID).Error; err != nil {
		return nil, err
	}

	if checkInCounter != nil {
		checkInCounter.Add(ctx, 1)
	}

	span.SetAttributes(
		attribute.Int64("ticket.id", int64(ticket.ID)),
		attribute.Int64("slot.id", int64(ticket.SlotID)),
	)

	logging.Info(ctx).
		Uint("ticket_id", ticket.ID).
		Str("plate", plate).
		Uint("slot_id", ticket.SlotID).
		Msg("vehicle checked in")

	return &ticket, nil
}

// CheckOut closes the ticket: exit time, fee and paid flag are written and
// the slot freed in one transaction. Closing an already-closed ticket fails.
func (s *TicketService) CheckOut(ctx context.Context, ticketID uint) (*models.Ticket, error) {
	ctx, span := tracer.Start(ctx, "ticket.check_out")
	defer span.End()

	span.SetAttributes(attribute.Int64("ticket.id", int64(ticketID)))

	var ticket models.Ticket
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		return s.close(tx, &ticket)
	})
	if err != nil {
		return nil, err
	}

	return s.finishCheckOut(ctx, &ticket)
}

// CheckOutByPlate resolves the vehicle's open ticket and closes it, for the
// exit kiosk where only the plate is known.
func (s *TicketService) CheckOutByPlate(ctx context.Context, plate string) (*models.Ticket, error) {
	ctx, span := tracer.Start(ctx, "ticket.check_out_by_plate")
	defer span.End()

	span.SetAttributes(attribute.String("vehicle.plate", plate))

	plate = strings.TrimSpace(plate)
	var ticket models.Ticket

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.Where("plate = ?", plate).First(&vehicle).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}

		err := tx.Where("vehicle_id = ? AND exit_time IS NULL", vehicle.ID).
			First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoOpenTicket
			}
			return err
		}

		return s.close(tx, &ticket)
	})
	if err != nil {
		return nil, err
	}

	return s.finishCheckOut(ctx, &ticket)
}

// close writes the terminal state of an open ticket and frees its slot.
// The exit-time guard in the update makes racing check-outs lose cleanly:
// the re-check distinguishes a ticket closed by the other writer from one
// that disappeared.
func (s *TicketService) close(tx *gorm.DB, ticket *models.Ticket) error {
	if !ticket.Open() {
		return ErrTicketClosed
	}

	exit := s.clock.Now()
	fee := Fee(s.rate, s.minHours, ticket.EntryTime, exit)

	result := tx.Model(&models.Ticket{}).
		Where("id = ? AND exit_time IS NULL", ticket.ID).
		Updates(map[string]interface{}{
			"exit_time": exit,
			"total_fee": fee,
			"paid":      true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var current models.Ticket
		if err := tx.First(&current, ticket.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		if !current.Open() {
			return ErrTicketClosed
		}
		return ErrStaleWrite
	}

	ticket.ExitTime = &exit
	ticket.TotalFee = &fee
	ticket.Paid = true

	return releaseSlot(tx, ticket.SlotID)
}

func (s *TicketService) finishCheckOut(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	if err := database.DB.WithContext(ctx).
		Preload("Vehicle.VehicleType").
		Preload("Slot").
		First(ticket, ticket.ID).Error; err != nil {
		return nil, err
	}

	if checkOutCounter != nil {
		checkOutCounter.Add(ctx, 1)
	}
	if feeHistogram != nil && ticket.TotalFee != nil {
		feeHistogram.Record(ctx, *ticket.TotalFee)
	}

	logging.Info(ctx).
		Uint("ticket_id", ticket.ID).
		Uint("slot_id", ticket.SlotID).
		Float64("total_fee", derefFee(ticket.TotalFee)).
		Msg("vehicle checked out")

	return ticket, nil
}

// Delete removes a ticket without billing. Deleting an open ticket also
// frees its slot in the same transaction, so slot occupancy can never
// outlive the ticket that caused it.
func (s *TicketService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "ticket.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("ticket.id", int64(id)))

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.First(&ticket, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		if ticket.Open() {
			if err := releaseSlot(tx, ticket.SlotID); err != nil && !errors.Is(err, ErrSlotNotFound) {
				return err
			}
		}

		if err := tx.Delete(&ticket).Error; err != nil {
			return err
		}

		logging.Info(ctx).
			Uint("ticket_id", id).
			Bool("was_open", ticket.Open()).
			Msg("ticket deleted")

		return nil
	})
}

func derefFee(fee *float64) float64 {
	if fee == nil {
		return 0
	}
	return *fee
}
