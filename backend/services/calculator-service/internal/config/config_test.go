package config

import (
	"testing"
	"time"

	libconfig "gascalc/backend/libs/config"
	"gascalc/backend/libs/gas"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got, want := cfg.HTTPAddress(), ":8085"; got != want {
		t.Fatalf("addr=%q want %q", got, want)
	}
	if got, want := cfg.Constants, gas.DefaultConstants(); got != want {
		t.Fatalf("constants=%+v want %+v", got, want)
	}
}

func TestValidateRejectsBadConstants(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Constants.GrossToNetRatio = -1.11
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidateRejectsUnselectableDefaultTariff(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if got, want := cfg.DefaultTariff.ID, int64(1); got != want {
		t.Fatalf("default tariff id=%d want %d", got, want)
	}
	cfg.DefaultTariff.ID = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for default tariff id 0, got nil")
	}
}

func TestValidateRejectsNegativeTariff(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.DefaultTariff.StandingChargePencePerDay = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestExampleConfigLoads(t *testing.T) {
	t.Parallel()

	cfg := Default()
	noEnv := func(string) (string, bool) { return "", false }
	if err := libconfig.LoadWithLookup(cfg, "../../config.example.yaml", noEnv); err != nil {
		t.Fatalf("load example: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got, want := cfg.Redis.TTL, 5*time.Minute; got != want {
		t.Fatalf("ttl=%v want %v", got, want)
	}
	if got, want := cfg.Database.PingTimeout, 5*time.Second; got != want {
		t.Fatalf("ping timeout=%v want %v", got, want)
	}
	if got, want := cfg.DefaultTariff.ID, int64(1); got != want {
		t.Fatalf("tariff id=%d want %d", got, want)
	}
	if got, want := cfg.DefaultTariff.UnitRatePencePerKWh, 6.24; got != want {
		t.Fatalf("unit rate=%v want %v", got, want)
	}
	if got, want := cfg.Constants, gas.DefaultConstants(); got != want {
		t.Fatalf("constants=%+v want %+v", got, want)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Parallel()

	cfg := Default()
	env := map[string]string{
		"CALCULATOR_HTTP_PORT":               "9090",
		"CALCULATOR_WS_PING_INTERVAL":        "15s",
		"CALCULATOR_POSTGRES_MAX_OPEN_CONNS": "20",
		"CALCULATOR_POSTGRES_PING_TIMEOUT":   "2s",
		"GAS_CALORIFIC_VALUE":                "38.7",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	if err := libconfig.LoadWithLookup(cfg, "", lookup); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := cfg.HTTPAddress(), ":9090"; got != want {
		t.Fatalf("addr=%q want %q", got, want)
	}
	if got, want := cfg.WebSocket.PingInterval, 15*time.Second; got != want {
		t.Fatalf("ping=%v want %v", got, want)
	}
	if got, want := cfg.Constants.CalorificValueMJPerM3, 38.7; got != want {
		t.Fatalf("cv=%v want %v", got, want)
	}
	if got, want := cfg.Database.MaxOpenConns, 20; got != want {
		t.Fatalf("max open conns=%d want %d", got, want)
	}
	if got, want := cfg.Database.PingTimeout, 2*time.Second; got != want {
		t.Fatalf("ping timeout=%v want %v", got, want)
	}
}
