package implementation

import (
	"context"
	"errors"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
	"fitmarket-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) contract.SettingRepository {
	return &SettingRepositoryImpl{db: db}
}

func (r *SettingRepositoryImpl) Get(ctx context.Context, key string) (*entity.SettlementSetting, error) {
	var m model.SettlementSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.SettlementSetting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt}, nil
}

func (r *SettingRepositoryImpl) Upsert(ctx context.Context, setting *entity.SettlementSetting) error {
	m := model.SettlementSetting{Key: setting.Key, Value: setting.Value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&m).Error
}

func (r *SettingRepositoryImpl) FindAll(ctx context.Context) ([]*entity.SettlementSetting, error) {
	var models []*model.SettlementSetting
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	settings := make([]*entity.SettlementSetting, len(models))
	for i, m := range models {
		settings[i] = &entity.SettlementSetting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt}
	}
	return settings, nil
}
