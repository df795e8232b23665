package model

import "time"

type SettlementSetting struct {
	Key       string    `gorm:"type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SettlementSetting) TableName() string {
	return "settlement_settings"
}
