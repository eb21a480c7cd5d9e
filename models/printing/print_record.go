package printing

import (
	"time"

	"container-tracking/models/user"
)

// PrintRecord is the append-only history of delivery order prints. Rows are
// never mutated or deleted by lifecycle operations. AuthorizedByID is set
// only when the print consumed an Authorization; first prints and admin
// prints leave it empty.
type PrintRecord struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ContainerID uint      `gorm:"not null;index" json:"container_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	DocumentNumber string     `gorm:"type:varchar(20);not null" json:"document_number"`
	AuthorizedByID *uint      `json:"authorized_by_id,omitempty"`
	AuthorizedBy   *user.User `gorm:"foreignKey:AuthorizedByID" json:"authorized_by,omitempty"`

	PrintedAt time.Time `gorm:"autoCreateTime;index" json:"printed_at"`
}

// TableName sets the table name for the PrintRecord model
func (PrintRecord) TableName() string {
	return "print_records"
}
