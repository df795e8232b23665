package implementation

import (
	"context"
	"errors"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/mapper"
	"fitmarket-be/internal/model"
	"fitmarket-be/internal/repository/contract"
	"fitmarket-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WalletMapper
}

func NewWalletRepository(db *gorm.DB) contract.WalletRepository {
	return &WalletRepositoryImpl{
		db:     db,
		mapper: mapper.NewWalletMapper(),
	}
}

func (r *WalletRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WalletRepositoryImpl) Create(ctx context.Context, wallet *entity.Wallet) error {
	m := r.mapper.ToModel(wallet)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*wallet = *r.mapper.ToEntity(m)
	return nil
}

func (r *WalletRepositoryImpl) Update(ctx context.Context, wallet *entity.Wallet) error {
	m := r.mapper.ToModel(wallet)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *WalletRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Wallet, error) {
	var m model.Wallet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WalletRepositoryImpl) FindOneForUpdate(ctx context.Context, walletId uuid.UUID) (*entity.Wallet, error) {
	return r.lockOne(ctx, "id = ?", walletId)
}

func (r *WalletRepositoryImpl) FindByOwnerForUpdate(ctx context.Context, ownerId uuid.UUID) (*entity.Wallet, error) {
	return r.lockOne(ctx, "owner_id = ?", ownerId)
}

func (r *WalletRepositoryImpl) lockOne(ctx context.Context, cond string, arg uuid.UUID) (*entity.Wallet, error) {
	var m model.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(cond, arg).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
