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
)

type VehicleService struct{}

func NewVehicleService() *VehicleService {
	return &VehicleService{}
}

type VehicleInput struct {
	Plate         string `json:"plate"`
	Model         string `json:"model"`
	VehicleTypeID uint   `json:"vehicle_type_id"`
}

func (in *VehicleInput) validate() error {
	if err := validatePlate(in.Plate); err != nil {
		return err
	}
	if err := validateModel(in.Model); err != nil {
		return err
	}
	return nil
}

func (s *VehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "vehicle.list")
	defer span.End()

	var vehicles []models.Vehicle
	if err := database.DB.WithContext(ctx).
		Preload("VehicleType").
		Order("id").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *VehicleService) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "vehicle.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("vehicle.id", int64(id)))

	var vehicle models.Vehicle
	if err := database.DB.WithContext(ctx).
		Preload("VehicleType").
		First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (s *VehicleService) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "vehicle.get_by_plate")
	defer span.End()

	span.SetAttributes(attribute.String("vehicle.plate", plate))

	var vehicle models.Vehicle
	if err := database.DB.WithContext(ctx).
		Preload("VehicleType").
		Where("plate = ?", strings.TrimSpace(plate)).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*models.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "vehicle.create")
	defer span.End()

	span.SetAttributes(attribute.String("vehicle.plate", input.Plate))

	if err := input.validate(); err != nil {
		return nil, err
	}

	var vehicle models.Vehicle
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		vehicle, err = createVehicle(tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).
		Preload("VehicleType").
		First(&vehicle, vehicle.ID).Error; err != nil {
		return nil, err
	}

	logging.Info(ctx).
		Uint("vehicle_id", vehicle.ID).
		Str("plate", vehicle.Plate).
		Msg("vehicle created")

	return &vehicle, nil
}

// createVehicle runs inside a caller-owned transaction; checkIn reuses it for
// the implicit registration of first-time plates.
func createVehicle(tx *gorm.DB, input VehicleInput) (models.Vehicle, error) {
	var typeCount int64
	if err := tx.Model(&models.VehicleType{}).
		Where("id = ?", input.VehicleTypeID).
		Count(&typeCount).Error; err != nil {
		return models.Vehicle{}, err
	}
	if typeCount == 0 {
		return models.Vehicle{}, ErrVehicleTypeNotFound
	}

	vehicle := models.Vehicle{
		Plate:         strings.TrimSpace(input.Plate),
		Model:         strings.TrimSpace(input.Model),
		VehicleTypeID: input.VehicleTypeID,
	}
	if err := tx.Create(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Vehicle{}, ErrPlateTaken
		}
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id uint, input VehicleInput) (*models.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "vehicle.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("vehicle.id", int64(id)))

	if err := input.validate(); err != nil {
		return nil, err
	}

	vehicle, err := s.GetByID(ctx, id)
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
		"plate":           strings.TrimSpace(input.Plate),
		"model":           strings.TrimSpace(input.Model),
		"vehicle_type_id": input.VehicleTypeID,
	}
	if err := database.DB.WithContext(ctx).Model(vehicle).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPlateTaken
		}
		return nil, err
	}

	if err := database.DB.WithContext(ctx).
		Preload("VehicleType").
		First(vehicle, vehicle.ID).Error; err != nil {
		return nil, err
	}

	logging.Info(ctx).
		Uint("vehicle_id", vehicle.ID).
		Str("plate", vehicle.Plate).
		Msg("vehicle updated")

	return vehicle, nil
}

// Delete removes a vehicle. Vehicles with ticket history block rather than
// cascade: the tickets are the billing record.
func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "vehicle.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("vehicle.id", int64(id)))

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}

		var ticketCount int64
		if err := tx.Model(&models.Ticket{}).
			Where("vehicle_id = ?", id).
			Count(&ticketCount).Error; err != nil {
			return err
		}
		if ticketCount > 0 {
			return ErrVehicleHasTickets
		}

		if err := tx.Delete(&vehicle).Error; err != nil {
			return err
		}

		logging.Info(ctx).
			Uint("vehicle_id", id).
			Str("plate", vehicle.Plate).
			Msg("vehicle deleted")

		return nil
	})
}
