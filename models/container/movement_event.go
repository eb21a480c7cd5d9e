package container

import (
	"time"
)

// MovementEvent is an append-only record of a container being loaded onto or
// discharged from a vessel. The most recently created movement decides
// whether the container is on board (load) or ashore (discharge).
type MovementEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign keys for container and vessel relationships
	ContainerID uint      `gorm:"not null;index" json:"container_id"`
	Container   Container `gorm:"foreignKey:ContainerID" json:"-"`
	VesselID    uint      `gorm:"not null;index" json:"vessel_id"`

	Operation MovementOperation `gorm:"size:20;not null" json:"operation"`
	Date      time.Time         `gorm:"not null" json:"date"`
	Location  string            `gorm:"type:varchar(100);not null" json:"location"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName sets the table name for the MovementEvent model
func (MovementEvent) TableName() string {
	return "container_movement_events"
}
