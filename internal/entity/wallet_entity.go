package entity

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds one merchant's earnings. PendingBalance only grows from
// purchase/extension settlement and only shrinks in lock-step with an equal
// AvailableBalance increase (the release pair), or through refund adjustments.
type Wallet struct {
	Id               uuid.UUID
	OwnerId          uuid.UUID
	PendingBalance   float64
	AvailableBalance float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
