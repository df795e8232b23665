package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ScheduledJob struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_jobs_name_group"`
	Group     string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_jobs_name_group"`
	TriggerAt time.Time      `gorm:"not null;index"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	State     string         `gorm:"type:varchar(20);not null;index"`
	Attempts  int            `gorm:"not null;default:0"`
	FiredAt   *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ScheduledJob) TableName() string {
	return "scheduled_jobs"
}
