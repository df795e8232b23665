package service

import (
	"context"
	"testing"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletLedger_CreditPending(t *testing.T) {
	db := setupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	ledger := NewWalletLedger(nopLogger{})
	ctx := context.Background()
	merchantId := uuid.New()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))

	// First credit creates the wallet.
	wallet, err := ledger.CreditPending(ctx, uow, merchantId, 250_000)
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.Equal(t, 250_000.0, wallet.PendingBalance)
	assert.Equal(t, 0.0, wallet.AvailableBalance)

	// Second credit accumulates on the same wallet.
	wallet, err = ledger.CreditPending(ctx, uow, merchantId, 100_000)
	require.NoError(t, err)
	assert.Equal(t, 350_000.0, wallet.PendingBalance)
	require.NoError(t, uow.Commit())

	found, err := factory.NewUnitOfWork(ctx).WalletRepository().FindOne(ctx,
		specification.Filter("owner_id", merchantId))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 350_000.0, found.PendingBalance)
}

func TestWalletLedger_ReleasePending(t *testing.T) {
	db := setupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	ledger := NewWalletLedger(nopLogger{})
	ctx := context.Background()
	merchantId := uuid.New()
	orderId := uuid.New()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	wallet, err := ledger.CreditPending(ctx, uow, merchantId, 500_000)
	require.NoError(t, err)

	require.NoError(t, ledger.ReleasePending(ctx, uow, wallet.Id, orderId, 1756000000000, 500_000))
	require.NoError(t, uow.Commit())

	// The release moves the exact amount pending -> available.
	reader := factory.NewUnitOfWork(ctx)
	released, err := reader.WalletRepository().FindOne(ctx, specification.Filter("owner_id", merchantId))
	require.NoError(t, err)
	assert.Equal(t, 0.0, released.PendingBalance)
	assert.Equal(t, 500_000.0, released.AvailableBalance)

	// And leaves a zero-sum pair in the history.
	txs, err := reader.TransactionRepository().FindAll(ctx, specification.Filter("order_id", orderId))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	var sum float64
	kinds := map[entity.TransactionKind]bool{}
	for _, tx := range txs {
		sum += tx.Amount
		kinds[tx.Kind] = true
		assert.Equal(t, entity.TransactionStatusSuccess, tx.Status)
	}
	assert.Equal(t, 0.0, sum)
	assert.True(t, kinds[entity.TransactionKindDistributeProfit])
	assert.True(t, kinds[entity.TransactionKindPendingDeduction])
}

func TestWalletLedger_ReleasePending_MissingWallet(t *testing.T) {
	db := setupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	ledger := NewWalletLedger(nopLogger{})
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	err := ledger.ReleasePending(ctx, uow, uuid.New(), uuid.New(), 1, 100)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestWalletLedger_AdjustForRefund(t *testing.T) {
	db := setupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	ledger := NewWalletLedger(nopLogger{})
	ctx := context.Background()
	merchantId := uuid.New()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	wallet, err := ledger.CreditPending(ctx, uow, merchantId, 300_000)
	require.NoError(t, err)
	// Release part of it so both buckets hold money.
	require.NoError(t, ledger.ReleasePending(ctx, uow, wallet.Id, uuid.New(), 2, 200_000))

	// Refund 250k: pending (100k) drains first, the remaining 150k comes out
	// of available.
	require.NoError(t, ledger.AdjustForRefund(ctx, uow, wallet.Id, 250_000))
	require.NoError(t, uow.Commit())

	adjusted, err := factory.NewUnitOfWork(ctx).WalletRepository().FindOne(ctx,
		specification.Filter("owner_id", merchantId))
	require.NoError(t, err)
	assert.Equal(t, 0.0, adjusted.PendingBalance)
	assert.Equal(t, 50_000.0, adjusted.AvailableBalance)
}
