package services

import (
	"context"
	"errors"
	"strings"

	"parking-lot-api/internal/database"
	"parking-lot-api/internal/logging"
	"parking-lot-api/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotService struct{}

func NewSlotService() *SlotService {
	return &SlotService{}
}

type SlotInput struct {
	Number        int    `json:"number"`
	Floor         string `json:"floor"`
	Sector        string `json:"sector"`
	VehicleTypeID uint   `json:"vehicle_type_id"`
}

func (s *SlotService) List(ctx context.Context) ([]models.Slot, error) {
	ctx, span := tracer.Start(ctx, "slot.list")
	defer span.End()

	var slots []models.Slot
	if err := database.DB.WithContext(ctx).
		Preload("Vehicle").
		Preload("VehicleType").
		Order("number").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *SlotService) ListFree(ctx context.Context) ([]models.Slot, error) {
	ctx, span := tracer.Start(ctx, "slot.list_free")
	defer span.End()

	var slots []models.Slot
	if err := database.DB.WithContext(ctx).
		Preload("VehicleType").
		Where("occupied = ?", false).
		Order("number").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(slots)))
	return slots, nil
}

func (s *SlotService) GetByID(ctx context.Context, id uint) (*models.Slot, error) {
	ctx, span := tracer.Start(ctx, "slot.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("slot.id", int64(id)))

	var slot models.Slot
	if err := database.DB.WithContext(ctx).
		Preload("Vehicle").
		Preload("VehicleType").
		First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (s *SlotService) Create(ctx context.Context, input SlotInput) (*models.Slot, error) {
	ctx, span := tracer.Start(ctx, "slot.create")
	defer span.End()

	span.SetAttributes(attribute.Int("slot.number", input.Number))

	if err := validateSlotNumber(input.Number); err != nil {
		return nil, err
	}

	var typeCount int64
	if err := database.DB.WithContext(ctx).Model(&models.VehicleType{}).
		Where("id = ?", input.VehicleTypeID).
		Count(&typeCount).Error; err != nil {
		return nil, err
	}
	if typeCount == 0 {
		return nil, ErrVehicleTypeNotFound
	}

	// New slots always start free regardless of what the client sent.
	slot := models.Slot{
		Number:        input.Number,
		Floor:         strings.TrimSpace(input.Floor),
		Sector:        strings.TrimSpace(input.Sector),
		Occupied:      false,
		VehicleID:     nil,
		VehicleTypeID: input.VehicleTypeID,
	}
	if err := database.DB.WithContext(ctx).Create(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotNumberTaken
		}
		return nil, err
	}

	logging.Info(ctx).
		Uint("slot_id", slot.ID).
		Int("number", slot.Number).
		Msg("slot created")

	return &slot, nil
}

// Update changes the administrative fields only. Occupied and the vehicle
// link belong to the ticket lifecycle and are never touched here.
func (s *SlotService) Update(ctx context.Context, id uint, input SlotInput) (*models.Slot, error) {
	ctx, span := tracer.Start(ctx, "slot.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("slot.id", int64(id)))

	if err := validateSlotNumber(input.Number); err != nil {
		return nil, err
	}

	slot, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var typeCount int64
	if err := database.DB.WithContext(ctx).Model(&models.VehicleType{}).
		Where("id = ?", input.VehicleTypeID).
		Count(&typeCount).Error; err != nil {
		return nil, err
	}
	if typeCount == 0 {
		return nil, ErrVehicleTypeNotFound
	}

	updates := map[string]interface{}{
		"number":          input.Number,
		"floor":           strings.TrimSpace(input.Floor),
		"sector":          strings.TrimSpace(input.Sector),
		"vehicle_type_id": input.VehicleTypeID,
	}
	if err := database.DB.WithContext(ctx).Model(slot).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotNumberTaken
		}
		return nil, err
	}

	logging.Info(ctx).
		Uint("slot_id", slot.ID).
		Int("number", slot.Number).
		Msg("slot updated")

	return slot, nil
}

func (s *SlotService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "slot.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("slot.id", int64(id)))

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.Slot
		if err := tx.First(&slot, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		if slot.Occupied {
			return ErrSlotOccupied
		}

		if err := tx.Delete(&slot).Error; err != nil {
			return err
		}

		logging.Info(ctx).
			Uint("slot_id", id).
			Int("number", slot.Number).
			Msg("slot deleted")

		return nil
	})
}

// findFreeSlot picks the free slot with the lowest id, locked FOR UPDATE with
// SKIP LOCKED so concurrent check-ins never fight over the same row. Runs
// inside the check-in transaction.
func findFreeSlot(tx *gorm.DB) (*models.Slot, error) {
	var slot models.Slot
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("occupied = ?", false).
		Order("id").
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotFull
		}
		return nil, err
	}
	return &slot, nil
}

// occupySlot marks the slot taken by the vehicle. RowsAffected == 0 means the
// slot vanished under us (concurrent administrative delete).
func occupySlot(tx *gorm.DB, slotID, vehicleID uint) error {
	result := tx.Model(&models.Slot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"occupied":   true,
			"vehicle_id": vehicleID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func releaseSlot(tx *gorm.DB, slotID uint) error {
	result := tx.Model(&models.Slot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"occupied":   false,
			"vehicle_id": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}
