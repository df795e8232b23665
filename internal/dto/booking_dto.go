package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PurchasedId uuid.UUID `json:"purchased_id" validate:"required"`
	TrainerId   uuid.UUID `json:"trainer_id" validate:"required"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
}

type BookingResponse struct {
	Id          uuid.UUID `json:"id"`
	CustomerId  uuid.UUID `json:"customer_id"`
	TrainerId   uuid.UUID `json:"trainer_id"`
	PurchasedId uuid.UUID `json:"purchased_id"`
	Date        string    `json:"date"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
}

// PublishBookingCompletedMessage travels over the in-process bus to the
// early-release checker.
type PublishBookingCompletedMessage struct {
	BookingId   uuid.UUID `json:"booking_id"`
	PurchasedId uuid.UUID `json:"purchased_id"`
}

type CancelBookingRequest struct {
	// RefundSession gives the slot back to the entitlement; unrefunded
	// cancellations still count toward early release.
	RefundSession bool `json:"refund_session"`
}
