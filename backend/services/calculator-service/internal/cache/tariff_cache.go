package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gascalc/backend/services/calculator-service/internal/models"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache: miss")

const activeKey = "gascalc:tariffs:active"

// TariffCache keeps tariff presets in Redis as JSON.
type TariffCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewTariffCache returns redis-backed cache.
func NewTariffCache(client redis.Cmdable, ttl time.Duration) *TariffCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TariffCache{client: client, ttl: ttl}
}

func presetKey(id int64) string {
	return fmt.Sprintf("gascalc:tariffs:%d", id)
}

// GetActive returns the cached active list.
func (c *TariffCache) GetActive(ctx context.Context) ([]models.TariffPreset, error) {
	var presets []models.TariffPreset
	if err := c.get(ctx, activeKey, &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

// SetActive caches the active list.
func (c *TariffCache) SetActive(ctx context.Context, presets []models.TariffPreset) error {
	return c.set(ctx, activeKey, presets)
}

// Get returns a cached preset.
func (c *TariffCache) Get(ctx context.Context, id int64) (*models.TariffPreset, error) {
	var p models.TariffPreset
	if err := c.get(ctx, presetKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Set caches a preset.
func (c *TariffCache) Set(ctx context.Context, p models.TariffPreset) error {
	return c.set(ctx, presetKey(p.ID), p)
}

func (c *TariffCache) get(ctx context.Context, key string, dst interface{}) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (c *TariffCache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
