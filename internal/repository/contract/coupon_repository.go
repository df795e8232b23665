package contract

import (
	"context"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	Update(ctx context.Context, coupon *entity.Coupon) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error)

	// Consume decrements remaining quantity and increments used count in one
	// guarded UPDATE; returns false when no quantity remains.
	Consume(ctx context.Context, couponId uuid.UUID) (bool, error)
}
