package model

import (
	"time"

	"github.com/google/uuid"
)

type Coupon struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	Type        string     `gorm:"type:varchar(30);not null"`
	DiscountPct float64    `gorm:"type:decimal(5,4);not null"`
	MaxDiscount float64    `gorm:"type:decimal(14,2);not null"`
	Quantity    int        `gorm:"not null;default:0"`
	UsedCount   int        `gorm:"not null;default:0"`
	IssuerId    *uuid.UUID `gorm:"type:uuid;index"`
	ExpiresAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Coupon) TableName() string {
	return "coupons"
}
