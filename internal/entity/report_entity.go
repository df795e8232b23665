package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusOpen              ReportStatus = "open"
	ReportStatusResolvedRefunded  ReportStatus = "resolved_refunded"
	ReportStatusResolvedDismissed ReportStatus = "resolved_dismissed"
)

// Report is a customer dispute against an order item. An open report pauses
// the item's profit-release job; resolving resumes it or refunds the item.
type Report struct {
	Id          uuid.UUID
	OrderItemId uuid.UUID
	CustomerId  uuid.UUID
	Reason      string
	Status      ReportStatus
	AdminNotes  string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
