package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	containerModel "container-tracking/models/container"
	logModel "container-tracking/models/log"
	printingModel "container-tracking/models/printing"
	userModel "container-tracking/models/user"
	vesselModel "container-tracking/models/vessel"
)

// NewTestDB opens a fresh in-memory database migrated with every model. Each
// test gets its own instance so tests stay isolated without truncation. The
// named shared-cache DSN makes every pooled connection see the same database;
// a plain ":memory:" DSN gives each connection its own empty one, which
// breaks any query running on a second connection while a transaction is
// open.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&userModel.User{},
		&vesselModel.Vessel{},
		&containerModel.Container{},
		&containerModel.StatusEvent{},
		&containerModel.MovementEvent{},
		&printingModel.Authorization{},
		&printingModel.AccessRequest{},
		&printingModel.PrintRecord{},
		&printingModel.DeliveryCounter{},
		&logModel.Log{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CreateContainer inserts a container with a unique number for the test.
func CreateContainer(t *testing.T, db *gorm.DB, number string) *containerModel.Container {
	t.Helper()
	bl := fmt.Sprintf("BL-%s", number)
	ctr := &containerModel.Container{
		ContainerNumber: number,
		BLNumber:        &bl,
		ContainerType:   "40HC",
	}
	if err := db.Create(ctr).Error; err != nil {
		t.Fatalf("failed to create container %s: %v", number, err)
	}
	return ctr
}

// CreateVessel inserts a vessel with the given status.
func CreateVessel(t *testing.T, db *gorm.DB, name string, status vesselModel.VesselStatus) *vesselModel.Vessel {
	t.Helper()
	vsl := &vesselModel.Vessel{
		Name:         name,
		VoyageNumber: fmt.Sprintf("VOY-%s", name),
		VesselType:   "Container Ship",
		Status:       status,
	}
	if err := db.Create(vsl).Error; err != nil {
		t.Fatalf("failed to create vessel %s: %v", name, err)
	}
	return vsl
}

// CreateUser inserts a user, optionally with the admin flag.
func CreateUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *userModel.User {
	t.Helper()
	u := &userModel.User{
		Username:     username,
		PasswordHash: "x",
		IsAdmin:      isAdmin,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return u
}
