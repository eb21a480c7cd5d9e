package main

import (
	"fmt"
	"os"

	"container-tracking/database"
	"container-tracking/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate  - Run schema migrations")
		fmt.Println("  go run tools/migrate.go seed     - Seed admin user and delivery counter")
		return
	}

	db, err := database.InitDB()
	if err != nil {
		fmt.Printf("❌ Database connection failed: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		fmt.Println("🌱 Seeding baseline data...")
		if err := seeders.SeedAdminUser(db); err != nil {
			fmt.Printf("❌ Admin seed failed: %v\n", err)
			os.Exit(1)
		}
		if err := seeders.SeedDeliveryCounter(db); err != nil {
			fmt.Printf("❌ Counter seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Seeding completed successfully!")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Println("Available commands: migrate, seed")
	}
}
