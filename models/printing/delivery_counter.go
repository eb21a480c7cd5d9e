package printing

import (
	"time"
)

// DeliveryCounter is the monotonic source of delivery order numbers. A single
// row is kept; increments happen inside the print transaction.
type DeliveryCounter struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Counter     int       `gorm:"not null;default:1" json:"counter"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// TableName sets the table name for the DeliveryCounter model
func (DeliveryCounter) TableName() string {
	return "delivery_counters"
}
