package models

import (
	"time"
)

// Slot is a numbered parking space. Occupied and VehicleID are owned by the
// ticket lifecycle: they change only inside a check-in/check-out transaction.
type Slot struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Number        int       `gorm:"uniqueIndex;not null" json:"number"`
	Floor         string    `gorm:"size:10" json:"floor,omitempty"`
	Sector        string    `gorm:"size:10" json:"sector,omitempty"`
	Occupied      bool      `gorm:"not null;default:false" json:"occupied"`
	VehicleID     *uint     `json:"vehicle_id"`
	VehicleTypeID uint      `gorm:"not null" json:"vehicle_type_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicle     *Vehicle    `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	VehicleType VehicleType `gorm:"foreignKey:VehicleTypeID" json:"vehicle_type,omitempty"`
}

type SlotResponse struct {
	ID          uint                 `json:"id"`
	Number      int                  `json:"number"`
	Floor       string               `json:"floor,omitempty"`
	Sector      string               `json:"sector,omitempty"`
	Occupied    bool                 `json:"occupied"`
	VehicleID   *uint                `json:"vehicle_id"`
	Vehicle     *VehicleResponse     `json:"vehicle,omitempty"`
	VehicleType *VehicleTypeResponse `json:"vehicle_type,omitempty"`
}

func (s *Slot) ToResponse() SlotResponse {
	resp := SlotResponse{
		ID:        s.ID,
		Number:    s.Number,
		Floor:     s.Floor,
		Sector:    s.Sector,
		Occupied:  s.Occupied,
		VehicleID: s.VehicleID,
	}
	if s.Vehicle != nil {
		v := s.Vehicle.ToResponse()
		resp.Vehicle = &v
	}
	if s.VehicleType.ID != 0 {
		t := s.VehicleType.ToResponse()
		resp.VehicleType = &t
	}
	return resp
}
