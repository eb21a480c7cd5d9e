package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"container-tracking/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := AutoMigrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Event tables are always read latest-first per container
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_status_events_container_created ON container_status_events(container_id, created_at DESC, id DESC)").Error; err != nil {
		return fmt.Errorf("failed to create status event index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_movement_events_container_created ON container_movement_events(container_id, created_at DESC, id DESC)").Error; err != nil {
		return fmt.Errorf("failed to create movement event index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_movement_events_vessel ON container_movement_events(vessel_id)").Error; err != nil {
		return fmt.Errorf("failed to create movement vessel index: %w", err)
	}

	// Vessel sweep scans by ETA
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_vessels_eta ON vessels(eta)").Error; err != nil {
		return fmt.Errorf("failed to create vessel eta index: %w", err)
	}

	// Print eligibility checks
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_print_records_container_printed ON print_records(container_id, printed_at DESC, id DESC)").Error; err != nil {
		return fmt.Errorf("failed to create print record index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_print_authorizations_lookup ON print_authorizations(container_id, user_id, used)").Error; err != nil {
		return fmt.Errorf("failed to create authorization index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
