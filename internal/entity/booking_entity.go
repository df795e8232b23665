package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked     BookingStatus = "booked"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusFinished   BookingStatus = "finished"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking is one scheduled training session. The window is half-open
// [StartAt, EndAt): two bookings with end == start do not overlap. No two
// non-cancelled bookings for the same customer or the same trainer may have
// overlapping windows on the same date.
type Booking struct {
	Id          uuid.UUID
	CustomerId  uuid.UUID
	TrainerId   uuid.UUID
	PurchasedId uuid.UUID
	Date        time.Time // date only, midnight UTC
	StartAt     time.Time
	EndAt       time.Time
	Status      BookingStatus
	// CancelledRefunded marks a cancellation that gave the session back to the
	// entitlement; such cancellations do not count toward early release.
	CancelledRefunded bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}
