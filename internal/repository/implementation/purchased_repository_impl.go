package implementation

import (
	"context"
	"errors"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/mapper"
	"fitmarket-be/internal/model"
	"fitmarket-be/internal/repository/contract"
	"fitmarket-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PurchasedRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PurchasedMapper
}

func NewPurchasedRepository(db *gorm.DB) contract.PurchasedRepository {
	return &PurchasedRepositoryImpl{
		db:     db,
		mapper: mapper.NewPurchasedMapper(),
	}
}

func (r *PurchasedRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PurchasedRepositoryImpl) Create(ctx context.Context, purchased *entity.CustomerPurchased) error {
	m := r.mapper.ToModel(purchased)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*purchased = *r.mapper.ToEntity(m)
	return nil
}

func (r *PurchasedRepositoryImpl) Update(ctx context.Context, purchased *entity.CustomerPurchased) error {
	m := r.mapper.ToModel(purchased)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *PurchasedRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerPurchased, error) {
	var m model.CustomerPurchased
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PurchasedRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerPurchased, error) {
	var models []*model.CustomerPurchased
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CustomerPurchased, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
