package entity

import (
	"time"

	"github.com/google/uuid"
)

type PurchasedStatus string

const (
	PurchasedStatusActive   PurchasedStatus = "active"
	PurchasedStatusExpired  PurchasedStatus = "expired"
	PurchasedStatusDisabled PurchasedStatus = "disabled"
)

// CustomerPurchased is an entitlement: the customer's remaining bookable
// sessions and expiration for a purchased course, package or subscription
// window. Extensions add sessions and push the expiration out.
type CustomerPurchased struct {
	Id                uuid.UUID
	CustomerId        uuid.UUID
	ItemType          OrderItemType
	RefId             uuid.UUID
	TrainerId         *uuid.UUID
	AvailableSessions int
	ExpirationDate    time.Time
	Status            PurchasedStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
