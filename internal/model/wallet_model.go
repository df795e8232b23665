package model

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PendingBalance   float64   `gorm:"type:decimal(14,2);not null;default:0"`
	AvailableBalance float64   `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Wallet) TableName() string {
	return "wallets"
}
