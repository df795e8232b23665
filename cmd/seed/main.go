package main

import (
	"log"
	"os"
	"time"

	"fitmarket-be/internal/model"
	"fitmarket-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedSettings(db)
	seedDemoMarketplace(db)

	log.Println("Seeding complete.")
}

// seedSettings writes the default settlement knobs. Existing rows keep their
// current value so operator tweaks survive reseeding.
func seedSettings(db *gorm.DB) {
	settings := []model.SettlementSetting{
		{Key: "commission_rate", Value: "0.10"},
		{Key: "profit_grace_days", Value: "3"},
		{Key: "auto_cancel_unpaid_minutes", Value: "60"},
		{Key: "feedback_reminder_days", Value: "2"},
	}

	for _, s := range settings {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&s).Error
		if err != nil {
			log.Printf("Warn: failed to seed setting %s: %v", s.Key, err)
		}
	}
	log.Println("Seeded settlement settings")
}

func seedDemoMarketplace(db *gorm.DB) {
	gymOwnerId := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	trainerId := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	customerId := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	users := []model.User{
		{Id: gymOwnerId, Email: "owner@fitmarket.dev", FullName: "Demo Gym Owner", Role: "gym_owner", Status: "active"},
		{Id: trainerId, Email: "trainer@fitmarket.dev", FullName: "Demo Trainer", Role: "trainer", Status: "active"},
		{Id: customerId, Email: "customer@fitmarket.dev", FullName: "Demo Customer", Role: "customer", Status: "active"},
	}
	for _, u := range users {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u).Error; err != nil {
			log.Printf("Warn: failed to seed user %s: %v", u.Email, err)
		}
	}

	courses := []model.GymCourse{
		{GymOwnerId: gymOwnerId, Name: "Beginner Strength 12x", Price: 1_200_000, DurationDays: 60, TotalSessions: 12, IsActive: true},
		{GymOwnerId: gymOwnerId, Name: "HIIT Shred 8x", Price: 900_000, DurationDays: 30, TotalSessions: 8, IsActive: true},
	}
	for _, c := range courses {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&c).Error; err != nil {
			log.Printf("Warn: failed to seed course %s: %v", c.Name, err)
		}
	}

	packages := []model.PtPackage{
		{TrainerId: trainerId, Name: "1-on-1 Coaching 10x", Price: 2_500_000, DurationDays: 90, TotalSessions: 10, IsActive: true},
	}
	for _, p := range packages {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
			log.Printf("Warn: failed to seed package %s: %v", p.Name, err)
		}
	}

	products := []model.Product{
		{SellerId: gymOwnerId, Name: "Whey Protein 2kg", Price: 650_000, Stock: 40, IsActive: true},
		{SellerId: gymOwnerId, Name: "Lifting Straps", Price: 120_000, Stock: 100, IsActive: true},
	}
	for _, p := range products {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
			log.Printf("Warn: failed to seed product %s: %v", p.Name, err)
		}
	}

	plans := []model.SubscriptionPlan{
		{GymOwnerId: gymOwnerId, Name: "Monthly Gym Access", Price: 350_000, PeriodDays: 30, IsActive: true},
	}
	for _, p := range plans {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
			log.Printf("Warn: failed to seed plan %s: %v", p.Name, err)
		}
	}

	expires := time.Now().AddDate(0, 6, 0)
	coupons := []model.Coupon{
		{Code: "WELCOME20", Type: "system", DiscountPct: 0.20, MaxDiscount: 100_000, Quantity: 500, ExpiresAt: &expires},
		{Code: "OWNERDEAL", Type: "gym_owner", DiscountPct: 0.10, MaxDiscount: 50_000, Quantity: 100, IssuerId: &gymOwnerId, ExpiresAt: &expires},
	}
	for _, c := range coupons {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&c).Error; err != nil {
			log.Printf("Warn: failed to seed coupon %s: %v", c.Code, err)
		}
	}

	log.Println("Seeded demo marketplace data")
}
