package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aevon-lab/calseries/internal/core/calendar"
)

const envPrefix = "CALSERIES_"

// Config represents the top-level application config.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Catalog     CatalogConfig     `koanf:"catalog"`
	Aggregation AggregationConfig `koanf:"aggregation"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"` // memory | postgres
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type CatalogConfig struct {
	SeedDir         string `koanf:"seed_dir"`
	CacheCapacity   int    `koanf:"cache_capacity"`
	DefaultCalendar string `koanf:"default_calendar"`
	ReloadInterval  string `koanf:"reload_interval"` // "0" or empty disables reloading
}

type AggregationConfig struct {
	WorkerCount  int `koanf:"worker_count"`
	MaxBatchSize int `koanf:"max_batch_size"`
}

// ReloadEvery returns the parsed seed reload interval. Zero means disabled.
func (c CatalogConfig) ReloadEvery() time.Duration {
	if strings.TrimSpace(c.ReloadInterval) == "" {
		return 0
	}
	d, err := time.ParseDuration(c.ReloadInterval)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Database.Type {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported database.type %q (must be memory or postgres)", c.Database.Type)
	}

	if c.Catalog.CacheCapacity <= 0 {
		return fmt.Errorf("catalog.cache_capacity must be > 0")
	}
	if _, err := calendar.Lookup(c.Catalog.DefaultCalendar); err != nil {
		return fmt.Errorf("invalid catalog.default_calendar: %w", err)
	}
	if raw := strings.TrimSpace(c.Catalog.ReloadInterval); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid catalog.reload_interval %q: %w", raw, err)
		}
		if d < 0 {
			return fmt.Errorf("catalog.reload_interval must be >= 0")
		}
	}

	if c.Aggregation.WorkerCount <= 0 {
		return fmt.Errorf("aggregation.worker_count must be > 0")
	}
	if c.Aggregation.MaxBatchSize <= 0 {
		return fmt.Errorf("aggregation.max_batch_size must be > 0")
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and the environment,
// then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                8080,
		"server.host":                "0.0.0.0",
		"server.max_body_size_mb":    1,
		"server.mode":                "release",
		"database.type":              "memory",
		"database.dsn":               "",
		"database.max_open_conns":    25,
		"database.max_idle_conns":    25,
		"database.auto_migrate":      true,
		"catalog.seed_dir":           "./series",
		"catalog.cache_capacity":     256,
		"catalog.default_calendar":   "gregorian",
		"catalog.reload_interval":    "0",
		"aggregation.worker_count":   10,
		"aggregation.max_batch_size": 1000,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
