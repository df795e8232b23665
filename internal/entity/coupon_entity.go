package entity

import (
	"time"

	"github.com/google/uuid"
)

type CouponType string

const (
	// CouponTypeSystem discounts are platform funded and reduce the platform
	// commission. Merchant coupons are self funded and leave the commission
	// base at the post-discount total.
	CouponTypeSystem      CouponType = "system"
	CouponTypeGymOwner    CouponType = "gym_owner"
	CouponTypeFreelancePt CouponType = "freelance_pt"
)

type Coupon struct {
	Id          uuid.UUID
	Code        string
	Type        CouponType
	DiscountPct float64 // 0.20 = 20%
	MaxDiscount float64 // cap on the absolute discount amount
	Quantity    int     // remaining uses
	UsedCount   int
	IssuerId    *uuid.UUID // merchant who issued it, nil for system coupons
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Coupon) IsMerchantIssued() bool {
	return c.Type == CouponTypeGymOwner || c.Type == CouponTypeFreelancePt
}
