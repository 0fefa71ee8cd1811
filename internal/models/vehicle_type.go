package models

import (
	"time"
)

// VehicleType is the class of vehicle a slot accepts (car, motorcycle, ...).
type VehicleType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:50" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicles []Vehicle `gorm:"foreignKey:VehicleTypeID" json:"-"`
}

type VehicleTypeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (t *VehicleType) ToResponse() VehicleTypeResponse {
	return VehicleTypeResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}
