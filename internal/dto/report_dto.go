package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	OrderItemId uuid.UUID `json:"order_item_id" validate:"required"`
	Reason      string    `json:"reason" validate:"required,min=10"`
}

type ResolveReportRequest struct {
	// Resolution is "refund" or "dismiss". Refund reverses the item's pending
	// profit; dismiss resumes the frozen release job.
	Resolution string `json:"resolution" validate:"required,oneof=refund dismiss"`
	AdminNotes string `json:"admin_notes"`
}

type ReportResponse struct {
	Id          uuid.UUID  `json:"id"`
	OrderItemId uuid.UUID  `json:"order_item_id"`
	CustomerId  uuid.UUID  `json:"customer_id"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
