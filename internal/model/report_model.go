package model

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderItemId uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason      string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(30);not null;default:'open'"`
	AdminNotes  string    `gorm:"type:text"`
	ProcessedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Report) TableName() string {
	return "reports"
}
