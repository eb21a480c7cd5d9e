package authz

import (
	"errors"

	"gorm.io/gorm"

	userModel "container-tracking/models/user"
)

// AdminChecker is the single capability check injected into the print gate
// and the lifecycle coordinator, replacing scattered per-call-site admin
// lookups. The database handle is supplied per call so a check made inside a
// transaction reads the same snapshot as the rest of the transaction.
type AdminChecker interface {
	IsAdmin(db *gorm.DB, userID uint) (bool, error)
}

// DBAdminChecker answers the capability check from the users table.
type DBAdminChecker struct{}

func NewDBAdminChecker() *DBAdminChecker {
	return &DBAdminChecker{}
}

// IsAdmin reports whether the user exists and carries the admin flag. An
// unknown user is simply not an admin.
func (c *DBAdminChecker) IsAdmin(db *gorm.DB, userID uint) (bool, error) {
	var u userModel.User
	err := db.Select("id", "is_admin").First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}
