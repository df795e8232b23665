package service

import (
	"context"
	"fmt"

	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IWalletLedger mutates merchant balances. Every method takes the caller's
// unit of work: wallet deltas must commit atomically with the transaction and
// order-item changes that caused them, so the ledger never opens its own
// transaction boundary.
type IWalletLedger interface {
	// CreditPending adds purchase earnings to the merchant's pending balance,
	// creating the wallet on first earnings.
	CreditPending(ctx context.Context, uow unitofwork.UnitOfWork, merchantId uuid.UUID, amount float64) (*entity.Wallet, error)
	// ReleasePending moves amount pending -> available and records the paired
	// distribute/deduction transactions so the history nets to zero.
	ReleasePending(ctx context.Context, uow unitofwork.UnitOfWork, walletId uuid.UUID, orderId uuid.UUID, orderCode int64, amount float64) error
	// AdjustForRefund takes a refunded item's profit back out of the balance,
	// pending first, then available for whatever remains.
	AdjustForRefund(ctx context.Context, uow unitofwork.UnitOfWork, walletId uuid.UUID, amount float64) error
	// AdjustForShippingVariance applies a signed delta from shipping-cost
	// reconciliation to the pending balance.
	AdjustForShippingVariance(ctx context.Context, uow unitofwork.UnitOfWork, walletId uuid.UUID, delta float64) error
}

type walletLedger struct {
	logger logger.ILogger
}

func NewWalletLedger(log logger.ILogger) IWalletLedger {
	return &walletLedger{logger: log}
}

func (l *walletLedger) CreditPending(ctx context.Context, uow unitofwork.UnitOfWork, merchantId uuid.UUID, amount float64) (*entity.Wallet, error) {
	repo := uow.WalletRepository()
	wallet, err := repo.FindByOwnerForUpdate(ctx, merchantId)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = &entity.Wallet{OwnerId: merchantId}
		if err := repo.Create(ctx, wallet); err != nil {
			return nil, err
		}
		// Re-read under the lock so a concurrent first-credit serializes.
		wallet, err = repo.FindByOwnerForUpdate(ctx, merchantId)
		if err != nil {
			return nil, err
		}
	}

	wallet.PendingBalance += amount
	if err := repo.Update(ctx, wallet); err != nil {
		return nil, err
	}
	l.logger.Info("wallet", "credited pending balance", map[string]interface{}{
		"wallet_id": wallet.Id,
		"amount":    amount,
	})
	return wallet, nil
}

func (l *walletLedger) ReleasePending(ctx context.Context, uow unitofwork.UnitOfWork, walletId uuid.UUID, orderId uuid.UUID, orderCode int64, amount float64) error {
	repo := uow.WalletRepository()
	wallet, err := repo.FindOneForUpdate(ctx, walletId)
	if err != nil {
		return err
	}
	if wallet == nil {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, walletId)
	}

	wallet.PendingBalance -= amount
	wallet.AvailableBalance += amount
	if err := repo.Update(ctx, wallet); err != nil {
		return err
	}

	// The release is recorded as two entries summing to zero so the ledger
	// history stays auditable.
	txRepo := uow.TransactionRepository()
	distribute := &entity.Transaction{
		OrderId:      orderId,
		OrderCode:    orderCode,
		Kind:         entity.TransactionKindDistributeProfit,
		Status:       entity.TransactionStatusSuccess,
		Amount:       amount,
		ProfitAmount: amount,
		WalletId:     &wallet.Id,
	}
	deduction := &entity.Transaction{
		OrderId:      orderId,
		OrderCode:    orderCode,
		Kind:         entity.TransactionKindPendingDeduction,
		Status:       entity.TransactionStatusSuccess,
		Amount:       -amount,
		ProfitAmount: -amount,
		WalletId:     &wallet.Id,
	}
	if err := txRepo.Create(ctx, distribute); err != nil {
		return err
	}
	if err := txRepo.Create(ctx, deduction); err != nil {
		return err
	}

	l.logger.Info("wallet", "released pending balance", map[string]interface{}{
		"wallet_id": wallet.Id,
		"amount":    amount,
	})
	return nil
}

func (l *walletLedger) AdjustForRefund(ctx context.Context, uow unitofwork.UnitOfWork, walletId uuid.UUID, amount float64) error {
	repo := uow.WalletRepository()
	wallet, err := repo.FindOneForUpdate(ctx, walletId)
	if err != nil {
		return err
	}
	if wallet == nil {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, walletId)
	}

	fromPending := amount
	if fromPending > wallet.PendingBalance {
		fromPending = wallet.PendingBalance
	}
	wallet.PendingBalance -= fromPending
	wallet.AvailableBalance -= amount - fromPending

	if err := repo.Update(ctx, wallet); err != nil {
		return err
	}
	l.logger.Info("wallet", "adjusted for refund", map[string]interface{}{
		"wallet_id":    wallet.Id,
		"amount":       amount,
		"from_pending": fromPending,
	})
	return nil
}

func (l *walletLedger) AdjustForShippingVariance(ctx context.Context, uow unitofwork.UnitOfWork, walletId uuid.UUID, delta float64) error {
	repo := uow.WalletRepository()
	wallet, err := repo.FindOneForUpdate(ctx, walletId)
	if err != nil {
		return err
	}
	if wallet == nil {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, walletId)
	}

	wallet.PendingBalance += delta
	if err := repo.Update(ctx, wallet); err != nil {
		return err
	}
	l.logger.Info("wallet", "adjusted for shipping variance", map[string]interface{}{
		"wallet_id": wallet.Id,
		"delta":     delta,
	})
	return nil
}

// IWalletService is the read surface merchants see.
type IWalletService interface {
	GetWallet(ctx context.Context, ownerId uuid.UUID) (*dto.WalletResponse, error)
	GetTransactions(ctx context.Context, ownerId uuid.UUID, limit, offset int) (*dto.WalletTransactionListResponse, error)
}

type walletService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewWalletService(uowFactory unitofwork.RepositoryFactory) IWalletService {
	return &walletService{uowFactory: uowFactory}
}

func (s *walletService) GetWallet(ctx context.Context, ownerId uuid.UUID) (*dto.WalletResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	wallet, err := uow.WalletRepository().FindOne(ctx, specification.Filter("owner_id", ownerId))
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		// A merchant with no earnings yet simply has zero balances.
		return &dto.WalletResponse{}, nil
	}
	return &dto.WalletResponse{
		Id:               wallet.Id,
		PendingBalance:   wallet.PendingBalance,
		AvailableBalance: wallet.AvailableBalance,
	}, nil
}

func (s *walletService) GetTransactions(ctx context.Context, ownerId uuid.UUID, limit, offset int) (*dto.WalletTransactionListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	wallet, err := uow.WalletRepository().FindOne(ctx, specification.Filter("owner_id", ownerId))
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return &dto.WalletTransactionListResponse{Transactions: []dto.WalletTransactionResponse{}}, nil
	}

	if limit <= 0 {
		limit = 20
	}
	transactions, err := uow.TransactionRepository().FindAll(ctx,
		specification.Filter("wallet_id", wallet.Id),
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.WalletTransactionListResponse{
		Transactions: make([]dto.WalletTransactionResponse, 0, len(transactions)),
	}
	for _, t := range transactions {
		res.Transactions = append(res.Transactions, dto.WalletTransactionResponse{
			Id:           t.Id,
			OrderCode:    t.OrderCode,
			Kind:         string(t.Kind),
			Status:       string(t.Status),
			Amount:       t.Amount,
			ProfitAmount: t.ProfitAmount,
			CreatedAt:    t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	res.Total = int64(len(res.Transactions))
	return res, nil
}
