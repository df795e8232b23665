package memory

import (
	"context"
	"strconv"
	"time"

	"fitmarket-be/internal/config"
	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const snapshotKey = "settlement-settings"

// SettingsSnapshot is the parsed view of the settlement_settings table a
// settlement run works with. It is taken once per cache window so every
// item in a run sees the same parameters.
type SettingsSnapshot struct {
	CommissionRate       float64
	ProfitGraceDays      int
	AutoCancelMinutes    int
	FeedbackReminderDays int
}

// SettingsCache is a read-through TTL cache over the settings repository.
// Missing or unparseable rows fall back to the configured defaults.
type SettingsCache struct {
	repo     contract.SettingRepository
	cache    *cache.Cache
	fallback config.SettlementConfig
}

func NewSettingsCache(repo contract.SettingRepository, cfg config.SettlementConfig) *SettingsCache {
	ttl := time.Duration(cfg.SettingsCacheTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SettingsCache{
		repo:     repo,
		cache:    cache.New(ttl, 2*ttl),
		fallback: cfg,
	}
}

func (c *SettingsCache) Snapshot(ctx context.Context) (*SettingsSnapshot, error) {
	if x, found := c.cache.Get(snapshotKey); found {
		return x.(*SettingsSnapshot), nil
	}
	return c.Refresh(ctx)
}

// Refresh reloads from the database and replaces the cached snapshot.
func (c *SettingsCache) Refresh(ctx context.Context) (*SettingsSnapshot, error) {
	settings, err := c.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}

	snapshot := &SettingsSnapshot{
		CommissionRate:       floatOr(values[constant.SettingCommissionRate], c.fallback.DefaultCommissionRate),
		ProfitGraceDays:      intOr(values[constant.SettingProfitGraceDays], c.fallback.ProfitGraceDays),
		AutoCancelMinutes:    intOr(values[constant.SettingAutoCancelMinutes], c.fallback.AutoCancelMinutes),
		FeedbackReminderDays: intOr(values[constant.SettingFeedbackReminderDays], c.fallback.FeedbackReminderDays),
	}
	c.cache.Set(snapshotKey, snapshot, cache.DefaultExpiration)
	return snapshot, nil
}

func floatOr(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
