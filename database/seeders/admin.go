package seeders

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"container-tracking/logger"
	printingModel "container-tracking/models/printing"
	userModel "container-tracking/models/user"
)

// SeedAdminUser creates the initial administrator account when the users
// table is empty. Credentials come from ADMIN_USERNAME/ADMIN_PASSWORD with
// sensible defaults for local development.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&userModel.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := userModel.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Success("Seeded administrator account: " + username)
	return nil
}

// SeedDeliveryCounter makes sure the delivery order counter row exists.
func SeedDeliveryCounter(db *gorm.DB) error {
	var count int64
	if err := db.Model(&printingModel.DeliveryCounter{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&printingModel.DeliveryCounter{Counter: 1}).Error
}
