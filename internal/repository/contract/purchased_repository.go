package contract

import (
	"context"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"
)

type PurchasedRepository interface {
	Create(ctx context.Context, purchased *entity.CustomerPurchased) error
	Update(ctx context.Context, purchased *entity.CustomerPurchased) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerPurchased, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerPurchased, error)
}
