package contract

import (
	"context"

	"fitmarket-be/internal/entity"
)

type SettingRepository interface {
	// Get returns nil, nil when the key has no row.
	Get(ctx context.Context, key string) (*entity.SettlementSetting, error)
	Upsert(ctx context.Context, setting *entity.SettlementSetting) error
	FindAll(ctx context.Context) ([]*entity.SettlementSetting, error)
}
