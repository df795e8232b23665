package mapper

import (
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
)

type CouponMapper struct{}

func NewCouponMapper() *CouponMapper {
	return &CouponMapper{}
}

func (m *CouponMapper) ToEntity(c *model.Coupon) *entity.Coupon {
	if c == nil {
		return nil
	}
	return &entity.Coupon{
		Id:          c.Id,
		Code:        c.Code,
		Type:        entity.CouponType(c.Type),
		DiscountPct: c.DiscountPct,
		MaxDiscount: c.MaxDiscount,
		Quantity:    c.Quantity,
		UsedCount:   c.UsedCount,
		IssuerId:    c.IssuerId,
		ExpiresAt:   c.ExpiresAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *CouponMapper) ToModel(c *entity.Coupon) *model.Coupon {
	if c == nil {
		return nil
	}
	return &model.Coupon{
		Id:          c.Id,
		Code:        c.Code,
		Type:        string(c.Type),
		DiscountPct: c.DiscountPct,
		MaxDiscount: c.MaxDiscount,
		Quantity:    c.Quantity,
		UsedCount:   c.UsedCount,
		IssuerId:    c.IssuerId,
		ExpiresAt:   c.ExpiresAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
