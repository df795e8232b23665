package main

import (
	"log"
	"os"

	"fitmarket-be/internal/model"
	"fitmarket-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		// Required for the booking exclusion constraints below.
		`CREATE EXTENSION IF NOT EXISTS btree_gist;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.GymCourse{},
		&model.PtPackage{},
		&model.Product{},
		&model.SubscriptionPlan{},
		&model.Coupon{},
		&model.Order{},
		&model.OrderItem{},
		&model.Transaction{},
		&model.Wallet{},
		&model.CustomerPurchased{},
		&model.Booking{},
		&model.ScheduledJob{},
		&model.Report{},
		&model.Notification{},
		&model.SettlementSetting{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Post-Migration: Overlap guards the application check alone cannot
	// enforce under concurrent inserts. One constraint per role so a trainer
	// and a customer can legitimately share the same window (it is the same
	// session).
	log.Println("Step 3: Applying booking exclusion constraints...")

	constraintSQL := []string{
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_customer_overlap') THEN
				ALTER TABLE bookings ADD CONSTRAINT bookings_no_customer_overlap
					EXCLUDE USING gist (
						customer_id WITH =,
						date WITH =,
						tsrange(start_at, end_at) WITH &&
					) WHERE (status <> 'cancelled');
			END IF;
		END $$;`,
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_trainer_overlap') THEN
				ALTER TABLE bookings ADD CONSTRAINT bookings_no_trainer_overlap
					EXCLUDE USING gist (
						trainer_id WITH =,
						date WITH =,
						tsrange(start_at, end_at) WITH &&
					) WHERE (status <> 'cancelled');
			END IF;
		END $$;`,
	}

	for _, sql := range constraintSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to apply constraint: %v. Continuing...", err)
		}
	}

	log.Println("Migration complete.")
}
