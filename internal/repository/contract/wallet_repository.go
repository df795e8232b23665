package contract

import (
	"context"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *entity.Wallet) error
	Update(ctx context.Context, wallet *entity.Wallet) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Wallet, error)

	// FindOneForUpdate loads the wallet under a row lock. Concurrent balance
	// deltas from different order items must serialize here or the ledger
	// drifts.
	FindOneForUpdate(ctx context.Context, walletId uuid.UUID) (*entity.Wallet, error)
	FindByOwnerForUpdate(ctx context.Context, ownerId uuid.UUID) (*entity.Wallet, error)
}
