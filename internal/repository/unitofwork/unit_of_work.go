package unitofwork

import (
	"context"

	"fitmarket-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrderRepository() contract.OrderRepository
	TransactionRepository() contract.TransactionRepository
	WalletRepository() contract.WalletRepository
	CouponRepository() contract.CouponRepository
	PurchasedRepository() contract.PurchasedRepository
	BookingRepository() contract.BookingRepository
	JobRepository() contract.JobRepository
	CatalogRepository() contract.CatalogRepository
	SettingRepository() contract.SettingRepository
	UserRepository() contract.UserRepository
	ReportRepository() contract.ReportRepository
	NotificationRepository() contract.NotificationRepository
}
