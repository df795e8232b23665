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

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	// Items are updated individually through UpdateItem; saving them here
	// would clobber profit-distribution stamps written by scheduled jobs.
	m.Items = nil
	if err := r.db.WithContext(ctx).Omit("Items").Save(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	query = query.Preload("Items")
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	query = query.Preload("Items")
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Order, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *OrderRepositoryImpl) UpdateItem(ctx context.Context, item *entity.OrderItem) error {
	m := r.mapper.ItemToModel(item)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *OrderRepositoryImpl) FindOneItem(ctx context.Context, specs ...specification.Specification) (*entity.OrderItem, error) {
	var m model.OrderItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ItemToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAllItems(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	var models []*model.OrderItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]*entity.OrderItem, len(models))
	for i, m := range models {
		items[i] = r.mapper.ItemToEntity(m)
	}
	return items, nil
}
