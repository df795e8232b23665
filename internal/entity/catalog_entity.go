package entity

import (
	"time"

	"github.com/google/uuid"
)

// Catalog definitions: what a purchase grants. Duration and session counts
// feed entitlement expiration and early-release math.

type GymCourse struct {
	Id            uuid.UUID
	GymOwnerId    uuid.UUID
	Name          string
	Price         float64
	DurationDays  int
	TotalSessions int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PtPackage struct {
	Id            uuid.UUID
	TrainerId     uuid.UUID
	Name          string
	Price         float64
	DurationDays  int
	TotalSessions int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Product struct {
	Id        uuid.UUID
	SellerId  uuid.UUID
	Name      string
	Price     float64
	Stock     int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubscriptionPlan struct {
	Id         uuid.UUID
	GymOwnerId uuid.UUID
	Name       string
	Price      float64
	PeriodDays int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
