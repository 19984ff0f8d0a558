package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml (HOTEL_DATABASE_PASSWORD и т.д.)
const EnvPrefix = "HOTEL"

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	GuestService GuestServiceConfig `toml:"guest_service" envconfig:"GUEST_SERVICE"`
	Hotel        HotelConfig        `toml:"hotel"`
	Migrations   MigrationsConfig   `toml:"migrations"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

type GuestServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// HotelConfig политика отеля по умолчанию (используется, пока в hotel_settings нет записи)
type HotelConfig struct {
	Timezone             string `toml:"timezone"`
	DepositRate          string `toml:"deposit_rate" envconfig:"DEPOSIT_RATE"`
	StandardCheckIn      string `toml:"standard_check_in" envconfig:"STANDARD_CHECK_IN"`
	StandardCheckOut     string `toml:"standard_check_out" envconfig:"STANDARD_CHECK_OUT"`
	EarlyCheckInGrace    string `toml:"early_check_in_grace" envconfig:"EARLY_CHECK_IN_GRACE"`
	EarliestEarlyCheckIn string `toml:"earliest_early_check_in" envconfig:"EARLIEST_EARLY_CHECK_IN"`
	EarlyCheckInService  int64  `toml:"early_check_in_service_id" envconfig:"EARLY_CHECK_IN_SERVICE_ID"`
	MoneyScale           int32  `toml:"money_scale" envconfig:"MONEY_SCALE"`
}

type MigrationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения HOTEL_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "hotel",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "hotel-service",
		},
		GuestService: GuestServiceConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		Hotel: HotelConfig{
			Timezone:             domain.DefaultTimezone,
			DepositRate:          domain.DefaultDepositRate,
			StandardCheckIn:      domain.DefaultStandardCheckIn,
			StandardCheckOut:     domain.DefaultStandardCheckOut,
			EarlyCheckInGrace:    domain.DefaultEarlyCheckInGrace,
			EarliestEarlyCheckIn: domain.DefaultEarliestEarlyCheckIn,
			MoneyScale:           domain.DefaultMoneyScale,
		},
		Migrations: MigrationsConfig{Enabled: true},
	}
}

// Validate проверяет значения, которые иначе всплыли бы только в рантайме
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if _, err := c.Hotel.Settings(); err != nil {
		return err
	}
	return nil
}

// Settings собирает политику отеля по умолчанию из секции [hotel]
func (h HotelConfig) Settings() (*domain.HotelSettings, error) {
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid hotel.timezone %q: %w", h.Timezone, err)
	}

	rate, err := decimal.NewFromString(h.DepositRate)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("config: hotel.deposit_rate must be a decimal in [0, 1], got %q", h.DepositRate)
	}

	times := map[string]string{
		"standard_check_in":       h.StandardCheckIn,
		"standard_check_out":      h.StandardCheckOut,
		"early_check_in_grace":    h.EarlyCheckInGrace,
		"earliest_early_check_in": h.EarliestEarlyCheckIn,
	}
	for name, value := range times {
		if err := types.TimeString(value).Validate(); err != nil {
			return nil, fmt.Errorf("config: hotel.%s: %w", name, err)
		}
	}

	settings := &domain.HotelSettings{
		DepositRate:          rate,
		StandardCheckIn:      types.TimeString(h.StandardCheckIn),
		StandardCheckOut:     types.TimeString(h.StandardCheckOut),
		EarlyCheckInGrace:    types.TimeString(h.EarlyCheckInGrace),
		EarliestEarlyCheckIn: types.TimeString(h.EarliestEarlyCheckIn),
		Location:             loc,
		MoneyScale:           h.MoneyScale,
	}
	if h.EarlyCheckInService > 0 {
		id := h.EarlyCheckInService
		settings.EarlyCheckInServiceID = &id
	}

	return settings, nil
}
