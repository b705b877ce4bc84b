package repository

import (
	"context"
	"database/sql"
	"errors"

	"gascalc/backend/services/calculator-service/internal/models"
)

// ErrTariffNotFound is returned when no preset matches.
var ErrTariffNotFound = errors.New("tariff: not found")

// TariffRepository reads tariff presets. It never writes.
type TariffRepository struct {
	db *sql.DB
}

// NewTariffRepository returns repository.
func NewTariffRepository(db *sql.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

const tariffColumns = `id, name, region, unit_rate_pence_per_kwh, standing_charge_pence_per_day,
		vat_rate, COALESCE(calorific_value_mj_per_m3, 0), is_active, updated_at`

// ListActive returns active presets, newest first.
func (r *TariffRepository) ListActive(ctx context.Context) ([]models.TariffPreset, error) {
	query := `SELECT ` + tariffColumns + `
		FROM gas_tariffs
		WHERE is_active = true
		ORDER BY updated_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []models.TariffPreset
	for rows.Next() {
		p, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return presets, nil
}

// GetByID returns an active preset by id.
func (r *TariffRepository) GetByID(ctx context.Context, id int64) (*models.TariffPreset, error) {
	query := `SELECT ` + tariffColumns + `
		FROM gas_tariffs
		WHERE id = $1 AND is_active = true`

	p, err := scanTariff(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTariffNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTariff(s scanner) (models.TariffPreset, error) {
	var p models.TariffPreset
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Region,
		&p.UnitRatePencePerKWh,
		&p.StandingChargePencePerDay,
		&p.VATRate,
		&p.CalorificValueMJPerM3,
		&p.IsActive,
		&p.UpdatedAt,
	)
	return p, err
}
