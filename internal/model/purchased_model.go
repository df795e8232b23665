package model

import (
	"time"

	"github.com/google/uuid"
)

type CustomerPurchased struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemType          string     `gorm:"type:varchar(50);not null"`
	RefId             uuid.UUID  `gorm:"type:uuid;not null"`
	TrainerId         *uuid.UUID `gorm:"type:uuid;index"`
	AvailableSessions int        `gorm:"not null;default:0"`
	ExpirationDate    time.Time  `gorm:"not null"`
	Status            string     `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`
}

func (CustomerPurchased) TableName() string {
	return "customer_purchased"
}
