package model

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId        uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_customer_date"`
	TrainerId         uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_trainer_date"`
	PurchasedId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Date              time.Time `gorm:"type:date;not null;index:idx_bookings_customer_date;index:idx_bookings_trainer_date"`
	StartAt           time.Time `gorm:"not null"`
	EndAt             time.Time `gorm:"not null"`
	Status            string    `gorm:"type:varchar(20);not null"`
	CancelledRefunded bool      `gorm:"default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}
