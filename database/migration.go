package database

import (
	"fmt"

	"gorm.io/gorm"

	containerModel "container-tracking/models/container"
	logModel "container-tracking/models/log"
	printingModel "container-tracking/models/printing"
	userModel "container-tracking/models/user"
	vesselModel "container-tracking/models/vessel"
)

// AutoMigrate runs migration for all models in dependency stages.
func AutoMigrate(db *gorm.DB) error {
	// Stage 1: core foundation models
	stage1Models := []interface{}{
		&userModel.User{},
		&vesselModel.Vessel{},
	}
	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: containers and their event tables
	stage2Models := []interface{}{
		&containerModel.Container{},
		&containerModel.StatusEvent{},
		&containerModel.MovementEvent{},
	}
	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: printing and audit
	stage3Models := []interface{}{
		&printingModel.Authorization{},
		&printingModel.AccessRequest{},
		&printingModel.PrintRecord{},
		&printingModel.DeliveryCounter{},
		&logModel.Log{},
	}
	for _, model := range stage3Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}
