package printing

import (
	"time"

	"container-tracking/models/user"
)

// RequestStatus is the lifecycle state of a print access request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func (rs RequestStatus) String() string {
	return string(rs)
}

// AccessRequest is a user's request for print access to a container's
// delivery order. Approval produces exactly one new Authorization.
type AccessRequest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ContainerID uint      `gorm:"not null;index" json:"container_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Status      RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	RequestedAt time.Time     `gorm:"autoCreateTime" json:"requested_at"`
}

// TableName sets the table name for the AccessRequest model
func (AccessRequest) TableName() string {
	return "print_access_requests"
}
