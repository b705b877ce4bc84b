package config

import (
	"fmt"
	"time"

	libconfig "gascalc/backend/libs/config"
	"gascalc/backend/libs/gas"
	"gascalc/backend/services/calculator-service/internal/models"
)

const (
	defaultPort     = "8085"
	defaultTariffID = 1
)

// Config defines calculator service configuration. Database and Redis are
// optional; without them only the default tariff is offered.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CALCULATOR_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN          string        `yaml:"dsn" env:"CALCULATOR_POSTGRES_DSN"`
		MaxOpenConns int           `yaml:"maxOpenConns" env:"CALCULATOR_POSTGRES_MAX_OPEN_CONNS"`
		MaxIdleConns int           `yaml:"maxIdleConns" env:"CALCULATOR_POSTGRES_MAX_IDLE_CONNS"`
		PingTimeout  time.Duration `yaml:"pingTimeout" env:"CALCULATOR_POSTGRES_PING_TIMEOUT"`
	} `yaml:"database"`
	Redis struct {
		Addr     string        `yaml:"addr" env:"CALCULATOR_REDIS_ADDR"`
		Password string        `yaml:"password" env:"CALCULATOR_REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"CALCULATOR_REDIS_DB"`
		TTL      time.Duration `yaml:"ttl" env:"CALCULATOR_TARIFF_CACHE_TTL"`
	} `yaml:"redis"`
	WebSocket struct {
		WriteTimeout time.Duration `yaml:"writeTimeout" env:"CALCULATOR_WS_WRITE_TIMEOUT"`
		PingInterval time.Duration `yaml:"pingInterval" env:"CALCULATOR_WS_PING_INTERVAL"`

		// Comma separated; empty allows any origin.
		AllowedOrigins string `yaml:"allowedOrigins" env:"CALCULATOR_WS_ALLOWED_ORIGINS"`
	} `yaml:"websocket"`
	Constants     gas.Constants       `yaml:"constants"`
	DefaultTariff models.TariffPreset `yaml:"defaultTariff" env:"-"`
}

// Load reads configuration from file/env and applies defaults.
func Load() (*Config, error) {
	cfg := Default()
	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns configuration with built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.Port = defaultPort
	cfg.Redis.TTL = 5 * time.Minute
	cfg.WebSocket.WriteTimeout = 10 * time.Second
	cfg.WebSocket.PingInterval = 30 * time.Second
	cfg.Constants = gas.DefaultConstants()
	cfg.DefaultTariff = models.TariffPreset{
		ID:                        defaultTariffID,
		Name:                      "Default",
		Region:                    "GB",
		UnitRatePencePerKWh:       6.24,
		StandingChargePencePerDay: 31.66,
		VATRate:                   gas.DefaultVATRate,
	}
	return cfg
}

// Validate checks constants and the default tariff.
func (c *Config) Validate() error {
	c.Constants = c.Constants.WithDefaults()
	if err := c.Constants.Validate(); err != nil {
		return fmt.Errorf("config: constants: %w", err)
	}
	t := c.DefaultTariff
	if t.ID <= 0 {
		return fmt.Errorf("config: default tariff id must be positive, got %d", t.ID)
	}
	if t.UnitRatePencePerKWh < 0 || t.StandingChargePencePerDay < 0 || t.VATRate < 0 {
		return fmt.Errorf("config: default tariff must not be negative")
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	return libconfig.HTTPAddress(c.HTTP.Port, defaultPort)
}
