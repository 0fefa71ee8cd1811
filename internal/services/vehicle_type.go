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

type VehicleTypeService struct{}

func NewVehicleTypeService() *VehicleTypeService {
	return &VehicleTypeService{}
}

type VehicleTypeInput struct {
	Name string `json:"name"`
}

func (s *VehicleTypeService) List(ctx context.Context) ([]models.VehicleType, error) {
	ctx, span := tracer.Start(ctx, "vehicle_type.list")
	defer span.End()

	var types []models.VehicleType
	if err := database.DB.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *VehicleTypeService) GetByID(ctx context.Context, id uint) (*models.VehicleType, error) {
	ctx, span := tracer.Start(ctx, "vehicle_type.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("vehicle_type.id", int64(id)))

	var vt models.VehicleType
	if err := database.DB.WithContext(ctx).First(&vt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleTypeNotFound
		}
		return nil, err
	}
	return &vt, nil
}

func (s *VehicleTypeService) Create(ctx context.Context, input VehicleTypeInput) (*models.VehicleType, error) {
	ctx, span := tracer.Start(ctx, "vehicle_type.create")
	defer span.End()

	if err := validateTypeName(input.Name); err != nil {
		return nil, err
	}

	vt := models.VehicleType{Name: strings.TrimSpace(input.Name)}
	if err := database.DB.WithContext(ctx).Create(&vt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTypeNameTaken
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("vehicle_type.id", int64(vt.ID)))

	logging.Info(ctx).
		Uint("vehicle_type_id", vt.ID).
		Str("name", vt.Name).
		Msg("vehicle type created")

	return &vt, nil
}

func (s *VehicleTypeService) Update(ctx context.Context, id uint, input VehicleTypeInput) (*models.VehicleType, error) {
	ctx, span := tracer.Start(ctx, "vehicle_type.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("vehicle_type.id", int64(id)))

	if err := validateTypeName(input.Name); err != nil {
		return nil, err
	}

	vt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).Model(vt).
		Update("name", strings.TrimSpace(input.Name)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTypeNameTaken
		}
		return nil, err
	}

	logging.Info(ctx).
		Uint("vehicle_type_id", vt.ID).
		Str("name", vt.Name).
		Msg("vehicle type updated")

	return vt, nil
}

// Delete removes a vehicle type. Types still referenced by vehicles block
// rather than cascade.
func (s *VehicleTypeService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "vehicle_type.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("vehicle_type.id", int64(id)))

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vt models.VehicleType
		if err := tx.First(&vt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleTypeNotFound
			}
			return err
		}

		var inUse int64
		if err := tx.Model(&models.Vehicle{}).
			Where("vehicle_type_id = ?", id).
			Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return ErrVehicleTypeInUse
		}

		if err := tx.Delete(&vt).Error; err != nil {
			return err
		}

		logging.Info(ctx).
			Uint("vehicle_type_id", id).
			Msg("vehicle type deleted")

		return nil
	})
}
