package contract

import (
	"context"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	// FindOne returns nil, nil when no order matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)

	UpdateItem(ctx context.Context, item *entity.OrderItem) error
	FindOneItem(ctx context.Context, specs ...specification.Specification) (*entity.OrderItem, error)
	FindAllItems(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error)
}
