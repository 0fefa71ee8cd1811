package models

import (
	"time"
)

type Vehicle struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Plate         string    `gorm:"uniqueIndex;not null;size:8" json:"plate"`
	Model         string    `gorm:"not null;size:50" json:"model"`
	VehicleTypeID uint      `gorm:"not null" json:"vehicle_type_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	VehicleType VehicleType `gorm:"foreignKey:VehicleTypeID" json:"vehicle_type,omitempty"`
	Tickets     []Ticket    `gorm:"foreignKey:VehicleID" json:"-"`
}

type VehicleResponse struct {
	ID          uint                 `json:"id"`
	Plate       string               `json:"plate"`
	Model       string               `json:"model"`
	VehicleType *VehicleTypeResponse `json:"vehicle_type,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

func (v *Vehicle) ToResponse() VehicleResponse {
	resp := VehicleResponse{
		ID:        v.ID,
		Plate:     v.Plate,
		Model:     v.Model,
		CreatedAt: v.CreatedAt,
	}
	if v.VehicleType.ID != 0 {
		t := v.VehicleType.ToResponse()
		resp.VehicleType = &t
	}
	return resp
}
