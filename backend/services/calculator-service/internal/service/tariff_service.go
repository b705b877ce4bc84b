package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gascalc/backend/services/calculator-service/internal/models"
	"gascalc/backend/services/calculator-service/internal/repository"
)

// ErrUnknownTariff is returned when a tariff id matches no preset.
var ErrUnknownTariff = errors.New("tariff: unknown preset")

// TariffSource is the read side of the tariff store.
type TariffSource interface {
	ListActive(ctx context.Context) ([]models.TariffPreset, error)
	GetByID(ctx context.Context, id int64) (*models.TariffPreset, error)
}

// TariffCache caches presets in front of a TariffSource.
type TariffCache interface {
	GetActive(ctx context.Context) ([]models.TariffPreset, error)
	SetActive(ctx context.Context, presets []models.TariffPreset) error
	Get(ctx context.Context, id int64) (*models.TariffPreset, error)
	Set(ctx context.Context, p models.TariffPreset) error
}

// TariffService resolves tariff presets with a configured fallback. Source
// and cache are both optional.
type TariffService struct {
	source   TariffSource
	cache    TariffCache
	fallback models.TariffPreset
	logger   *zap.Logger
}

// NewTariffService returns service instance.
func NewTariffService(source TariffSource, cache TariffCache, fallback models.TariffPreset, logger *zap.Logger) *TariffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	fallback.IsActive = true
	return &TariffService{
		source:   source,
		cache:    cache,
		fallback: fallback,
		logger:   logger,
	}
}

// Default returns the configured fallback preset.
func (s *TariffService) Default() models.TariffPreset {
	return s.fallback
}

// Active lists the active presets. The fallback is returned alone when no
// source is configured or the source fails.
func (s *TariffService) Active(ctx context.Context) []models.TariffPreset {
	if s.cache != nil {
		if presets, err := s.cache.GetActive(ctx); err == nil {
			return presets
		}
	}
	if s.source == nil {
		return []models.TariffPreset{s.fallback}
	}

	presets, err := s.source.ListActive(ctx)
	if err != nil {
		s.logger.Warn("tariff source unavailable, using default", zap.Error(err))
		return []models.TariffPreset{s.fallback}
	}
	if len(presets) == 0 {
		presets = []models.TariffPreset{s.fallback}
	}
	if s.cache != nil {
		if err := s.cache.SetActive(ctx, presets); err != nil {
			s.logger.Debug("failed to cache active tariffs", zap.Error(err))
		}
	}
	return presets
}

// Lookup returns the preset with the given id. Id 0 resolves to the
// fallback. The fallback's own id resolves to it only when the store has no
// such preset or cannot be reached, so a stored preset is never shadowed.
func (s *TariffService) Lookup(ctx context.Context, id int64) (models.TariffPreset, error) {
	if id == 0 {
		return s.fallback, nil
	}
	if s.cache != nil {
		if p, err := s.cache.Get(ctx, id); err == nil {
			return *p, nil
		}
	}
	if s.source == nil {
		return s.fallbackFor(id)
	}

	p, err := s.source.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTariffNotFound) {
		return s.fallbackFor(id)
	}
	if err != nil {
		if id != s.fallback.ID {
			return models.TariffPreset{}, err
		}
		s.logger.Warn("tariff source unavailable, using default", zap.Int64("tariff_id", id), zap.Error(err))
		return s.fallback, nil
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, *p); err != nil {
			s.logger.Debug("failed to cache tariff", zap.Int64("tariff_id", id), zap.Error(err))
		}
	}
	return *p, nil
}

func (s *TariffService) fallbackFor(id int64) (models.TariffPreset, error) {
	if id == s.fallback.ID {
		return s.fallback, nil
	}
	return models.TariffPreset{}, ErrUnknownTariff
}
