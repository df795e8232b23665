package contract

import (
	"context"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	Update(ctx context.Context, tx *entity.Transaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error)

	// MarkSuccessIfPending flips the purchase transaction for orderCode to
	// success in a single UPDATE guarded by the current status. It returns
	// false when the row was already success, which is how webhook replays are
	// detected; gateways retry deliveries concurrently, so this must stay one
	// atomic statement rather than a read followed by a write.
	MarkSuccessIfPending(ctx context.Context, orderCode int64) (bool, error)
}
