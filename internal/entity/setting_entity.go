package entity

import "time"

// SettlementSetting is an externally adjustable engine parameter (commission
// rate, grace days, auto-cancel minutes, feedback days). Values are strings
// parsed by the settings cache.
type SettlementSetting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
