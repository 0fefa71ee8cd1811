package models

import (
	"time"
)

// Ticket records one stay. ExitTime == nil means the ticket is open; TotalFee
// is set exactly once, at check-out, together with ExitTime.
type Ticket struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	VehicleID uint       `gorm:"not null" json:"vehicle_id"`
	SlotID    uint       `gorm:"not null" json:"slot_id"`
	EntryTime time.Time  `gorm:"not null" json:"entry_time"`
	ExitTime  *time.Time `json:"exit_time"`
	TotalFee  *float64   `json:"total_fee"`
	Paid      bool       `gorm:"not null;default:false" json:"paid"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Slot    Slot    `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (t *Ticket) Open() bool {
	return t.ExitTime == nil
}

type TicketResponse struct {
	ID        uint             `json:"id"`
	VehicleID uint             `json:"vehicle_id"`
	SlotID    uint             `json:"slot_id"`
	EntryTime time.Time        `json:"entry_time"`
	ExitTime  *time.Time       `json:"exit_time"`
	TotalFee  *float64         `json:"total_fee"`
	Paid      bool             `json:"paid"`
	Open      bool             `json:"open"`
	Vehicle   *VehicleResponse `json:"vehicle,omitempty"`
	Slot      *SlotResponse    `json:"slot,omitempty"`
}

func (t *Ticket) ToResponse() TicketResponse {
	resp := TicketResponse{
		ID:        t.ID,
		VehicleID: t.VehicleID,
		SlotID:    t.SlotID,
		EntryTime: t.EntryTime,
		ExitTime:  t.ExitTime,
		TotalFee:  t.TotalFee,
		Paid:      t.Paid,
		Open:      t.Open(),
	}
	if t.Vehicle.ID != 0 {
		v := t.Vehicle.ToResponse()
		resp.Vehicle = &v
	}
	if t.Slot.ID != 0 {
		s := t.Slot.ToResponse()
		resp.Slot = &s
	}
	return resp
}
