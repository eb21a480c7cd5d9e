package printing

import (
	"time"

	"container-tracking/models/user"
)

// Authorization is a one-time permission slip: it allows one specific user to
// print one specific container's delivery order once. Used flips to true
// exactly once, inside the same transaction as the print record insert, and a
// used authorization never satisfies an eligibility check again.
type Authorization struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ContainerID uint `gorm:"not null;index" json:"container_id"`

	// Grantee and granting admin
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	User           user.User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AuthorizedByID uint       `gorm:"not null" json:"authorized_by_id"`
	AuthorizedBy   *user.User `gorm:"foreignKey:AuthorizedByID" json:"authorized_by,omitempty"`

	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Authorization model
func (Authorization) TableName() string {
	return "print_authorizations"
}
