package user

import (
	"time"
)

// User is a local account. Admins may always print delivery orders and are
// the only users who can grant print authorizations.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"type:varchar(64);not null;unique" json:"username"`
	Email        *string `gorm:"type:varchar(120);unique" json:"email,omitempty"`
	PasswordHash string  `gorm:"type:varchar(128);not null" json:"-"`
	IsAdmin      bool    `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
