package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Tracing  TracingConfig  `toml:"tracing"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Server   ServerConfig   `toml:"server"`
	Engine   EngineConfig   `toml:"engine"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled bool `toml:"enabled"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig настройки хранилища кэша
// При Enabled=false используется кэш в памяти процесса
type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
	TTLHours  int    `toml:"ttl_hours"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// EngineConfig настройки движка расчета доступности
type EngineConfig struct {
	WorkerPoolSize     int     `toml:"worker_pool_size"`
	MaxPartySize       int     `toml:"max_party_size"`
	MaxDurationMinutes int     `toml:"max_duration_minutes"`
	DefaultStoreIDs    []int64 `toml:"default_store_ids"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "smc-availability-service",
			Path:        "/metrics",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "availability:",
			TTLHours:  48,
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Engine: EngineConfig{
			WorkerPoolSize:     domain.DefaultWorkerPoolSize,
			MaxPartySize:       domain.DefaultMaxPartySize,
			MaxDurationMinutes: domain.DefaultMaxDurationMinutes,
			DefaultStoreIDs:    []int64{1},
		},
	}
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Engine.WorkerPoolSize <= 0 {
		return fmt.Errorf("%w: engine.worker_pool_size must be positive", ErrInvalidConfig)
	}
	if c.Engine.MaxPartySize <= 0 {
		return fmt.Errorf("%w: engine.max_party_size must be positive", ErrInvalidConfig)
	}
	if c.Engine.MaxDurationMinutes <= 0 || c.Engine.MaxDurationMinutes > domain.BlocksPerDay*domain.BlockMinutes {
		return fmt.Errorf("%w: engine.max_duration_minutes out of range", ErrInvalidConfig)
	}
	if len(c.Engine.DefaultStoreIDs) == 0 {
		return fmt.Errorf("%w: engine.default_store_ids must not be empty", ErrInvalidConfig)
	}
	return nil
}
