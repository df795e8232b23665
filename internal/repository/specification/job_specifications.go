package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByJobKey identifies the single live job for a (name, group) key.
type ByJobKey struct {
	Name  string
	Group string
}

func (s ByJobKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ? AND \"group\" = ?", s.Name, s.Group)
}

// DueJobs matches scheduled jobs whose trigger time has passed.
type DueJobs struct {
	Now time.Time
}

func (s DueJobs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state = ? AND trigger_at <= ?", "scheduled", s.Now)
}
