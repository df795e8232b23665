package model

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderCode    int64      `gorm:"not null;index"`
	Kind         string     `gorm:"type:varchar(50);not null"`
	Status       string     `gorm:"type:varchar(20);not null"`
	Amount       float64    `gorm:"type:decimal(14,2);not null"`
	ProfitAmount float64    `gorm:"type:decimal(14,2);default:0"`
	WalletId     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
