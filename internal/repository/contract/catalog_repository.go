package contract

import (
	"context"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CatalogRepository interface {
	CreateCourse(ctx context.Context, course *entity.GymCourse) error
	FindOneCourse(ctx context.Context, specs ...specification.Specification) (*entity.GymCourse, error)

	CreatePackage(ctx context.Context, pkg *entity.PtPackage) error
	FindOnePackage(ctx context.Context, specs ...specification.Specification) (*entity.PtPackage, error)

	CreateProduct(ctx context.Context, product *entity.Product) error
	FindOneProduct(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	// DecrementStock reduces product stock in one guarded UPDATE; false when
	// stock is insufficient.
	DecrementStock(ctx context.Context, productId uuid.UUID, qty int) (bool, error)

	CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
}
