package vessel

import (
	"time"
)

// VesselStatus is the lifecycle state of a vessel.
type VesselStatus string

const (
	StatusEnRoute  VesselStatus = "En Route"
	StatusArrived  VesselStatus = "Arrived"
	StatusDeparted VesselStatus = "Departed"
)

func (vs VesselStatus) String() string {
	return string(vs)
}

func (vs VesselStatus) IsValid() bool {
	switch vs {
	case StatusEnRoute, StatusArrived, StatusDeparted:
		return true
	default:
		return false
	}
}

// Vessel represents a ship that carries containers. It owns movement events
// by backreference only; which containers are on board is derived, never
// stored.
type Vessel struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string       `gorm:"type:varchar(100);not null" json:"name"`
	VoyageNumber string       `gorm:"type:varchar(20);not null;unique" json:"voyage_number"`
	VesselType   string       `gorm:"type:varchar(50);not null" json:"vessel_type"`
	CapacityTEU  *int         `json:"capacity_teu,omitempty"`
	Status       VesselStatus `gorm:"size:20;not null;default:'En Route'" json:"status"`

	CurrentLocation    *string    `gorm:"type:varchar(100)" json:"current_location,omitempty"`
	CurrentDestination *string    `gorm:"type:varchar(100)" json:"current_destination,omitempty"`
	ETA                *time.Time `json:"eta,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Vessel model
func (Vessel) TableName() string {
	return "vessels"
}
