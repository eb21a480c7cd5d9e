package container

import (
	"time"
)

// Container represents a physical shipping container tracked by the system.
// Current status and location are never stored here; they are derived from
// the owned status and movement event histories.
type Container struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ContainerNumber string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_containers_number_bl" json:"container_number"`
	BLNumber        *string `gorm:"type:varchar(50);uniqueIndex:idx_containers_number_bl" json:"bl_number,omitempty"`
	ContainerType   string  `gorm:"type:varchar(20);not null" json:"container_type"`

	LoadingPort      *string `gorm:"type:varchar(100)" json:"loading_port,omitempty"`
	FinalDestination *string `gorm:"type:varchar(100)" json:"final_destination,omitempty"`
	Operator         *string `gorm:"type:varchar(50)" json:"operator,omitempty"`

	ArrivalDate   *time.Time `json:"arrival_date,omitempty"`
	StrippingDate *time.Time `json:"stripping_date,omitempty"`

	// Owned event collections; deleting a container cascades its events.
	StatusEvents   []StatusEvent   `gorm:"foreignKey:ContainerID;constraint:OnDelete:CASCADE" json:"status_events,omitempty"`
	MovementEvents []MovementEvent `gorm:"foreignKey:ContainerID;constraint:OnDelete:CASCADE" json:"movement_events,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Container model
func (Container) TableName() string {
	return "containers"
}
