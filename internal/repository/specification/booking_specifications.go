package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerOnDate scopes bookings to one customer's day.
type CustomerOnDate struct {
	CustomerId uuid.UUID
	Date       time.Time
}

func (s CustomerOnDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ? AND date = ?", s.CustomerId, s.Date)
}

// TrainerOnDate scopes bookings to one trainer's day.
type TrainerOnDate struct {
	TrainerId uuid.UUID
	Date      time.Time
}

func (s TrainerOnDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("trainer_id = ? AND date = ?", s.TrainerId, s.Date)
}

// PersonOnDate scopes bookings to one person's day, whether they appear as
// the customer or the trainer.
type PersonOnDate struct {
	PersonId uuid.UUID
	Date     time.Time
}

func (s PersonOnDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(customer_id = ? OR trainer_id = ?) AND date = ?", s.PersonId, s.PersonId, s.Date)
}

// NotCancelled keeps only bookings that still occupy their window.
type NotCancelled struct{}

func (s NotCancelled) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", "cancelled")
}

// OverlappingWindow matches bookings whose half-open [start_at, end_at) window
// intersects the given one.
type OverlappingWindow struct {
	StartAt time.Time
	EndAt   time.Time
}

func (s OverlappingWindow) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_at < ? AND end_at > ?", s.EndAt, s.StartAt)
}

// ByPurchased filters bookings by the entitlement they consume.
type ByPurchased struct {
	PurchasedId uuid.UUID
}

func (s ByPurchased) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("purchased_id = ?", s.PurchasedId)
}
