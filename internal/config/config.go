package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Драйверы хранилища снимков
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Venue    VenueConfig    `toml:"venue"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор драйвера хранилища снимков
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// VenueConfig правила площадки
type VenueConfig struct {
	Timezone                string  `toml:"timezone"`
	CancellationCutoffHours float64 `toml:"cancellation_cutoff_hours"`
	BookingHorizonDays      int     `toml:"booking_horizon_days"`
	PrizeValidityDays       int     `toml:"prize_validity_days"`
	OfferValidityDays       int     `toml:"offer_validity_days"`
	TournamentHours         int     `toml:"tournament_hours"`
}

// Location временная зона площадки
func (v VenueConfig) Location() (*time.Location, error) {
	return time.LoadLocation(v.Timezone)
}

// CancellationCutoff минимальный срок до начала слота для отмены
func (v VenueConfig) CancellationCutoff() time.Duration {
	return time.Duration(v.CancellationCutoffHours * float64(time.Hour))
}

// AdminConfig учетная запись администратора, создаваемая при старте
type AdminConfig struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Load читает конфигурацию из TOML файла и проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация без файла
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Storage: StorageConfig{Driver: DriverMemory},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "darts_booking",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "darts_booking_service",
			Path:        "/metrics",
		},
		Venue: VenueConfig{
			Timezone:                "Europe/Zagreb",
			CancellationCutoffHours: 2,
			BookingHorizonDays:      7,
			PrizeValidityDays:       90,
			OfferValidityDays:       30,
			TournamentHours:         2,
		},
		Admin: AdminConfig{
			ID:    "admin_001",
			Name:  "Manager",
			Email: "admin@trainpikado.com",
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Venue.CancellationCutoffHours < 0 {
		return fmt.Errorf("%w: venue.cancellation_cutoff_hours must not be negative", ErrInvalidConfig)
	}
	if c.Venue.BookingHorizonDays <= 0 || c.Venue.PrizeValidityDays <= 0 ||
		c.Venue.OfferValidityDays <= 0 || c.Venue.TournamentHours <= 0 {
		return fmt.Errorf("%w: venue periods must be positive", ErrInvalidConfig)
	}
	if _, err := c.Venue.Location(); err != nil {
		return fmt.Errorf("%w: venue.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}
