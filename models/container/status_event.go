package container

import (
	"time"
)

// StatusEvent is an append-only record of a container's declared state.
// Rows are never updated or deleted in normal operation; corrections are new
// events. "Current" is determined by CreatedAt (record creation), not by
// Date, because effective dates can be backfilled out of order.
type StatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for container relationship
	ContainerID uint      `gorm:"not null;index" json:"container_id"`
	Container   Container `gorm:"foreignKey:ContainerID" json:"-"`

	Status   ContainerStatus `gorm:"size:20;not null" json:"status"`
	Date     time.Time       `gorm:"not null" json:"date"`
	Location string          `gorm:"type:varchar(100);not null" json:"location"`
	Notes    string          `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName sets the table name for the StatusEvent model
func (StatusEvent) TableName() string {
	return "container_status_events"
}
