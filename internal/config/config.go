// Package config loads server and CLI settings: defaults, then an optional
// YAML file, then SKYNATION_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/platform/logging"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTPAddr   string `yaml:"http_addr"`
	NotifyAddr string `yaml:"notify_addr"`

	// DatabaseDSN selects Postgres; empty runs on the in-memory store.
	DatabaseDSN    string `yaml:"database_dsn"`
	MigrationsDir  string `yaml:"migrations_dir"`
	SnapshotPath   string `yaml:"snapshot_path"`
	CatalogFile    string `yaml:"catalog_file"`
	LogLevel       string `yaml:"log_level"`
	SeedStationID  string `yaml:"seed_station_id"`
	SeedStationRNG uint64 `yaml:"seed_station_rng"`

	// TickDuration and MaxTicksPerPass override the catalog tuning when set.
	TickDuration    time.Duration `yaml:"tick_duration"`
	MaxTicksPerPass int           `yaml:"max_ticks_per_pass"`
	Parallelism     int           `yaml:"parallelism"`

	// AccountEvery runs a background pass over every station; zero disables it.
	AccountEvery time.Duration `yaml:"account_every"`

	// RateLimitPerSecond of zero disables the per-station limiter.
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`

	// Guilds names guild ids for event messages.
	Guilds map[string]string `yaml:"guilds"`
}

func Default() Config {
	return Config{
		HTTPAddr:           ":8080",
		NotifyAddr:         ":8081",
		MigrationsDir:      "db/migrations",
		SnapshotPath:       "data/snapshots.db",
		LogLevel:           "info",
		SeedStationID:      "demo-station",
		SeedStationRNG:     1,
		Parallelism:        4,
		RateLimitPerSecond: 2,
		RateLimitBurst:     5,
	}
}

// Load builds the config from path (optional) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.DatabaseDSN = os.Expand(cfg.DatabaseDSN, os.Getenv)
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.HTTPAddr) == "":
		return fmt.Errorf("%w: http_addr is required", ErrInvalidConfig)
	case c.TickDuration < 0:
		return fmt.Errorf("%w: tick_duration must not be negative, got %v", ErrInvalidConfig, c.TickDuration)
	case c.MaxTicksPerPass < 0:
		return fmt.Errorf("%w: max_ticks_per_pass must not be negative, got %d", ErrInvalidConfig, c.MaxTicksPerPass)
	case c.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrInvalidConfig, c.Parallelism)
	case c.AccountEvery < 0:
		return fmt.Errorf("%w: account_every must be non-negative, got %v", ErrInvalidConfig, c.AccountEvery)
	case c.RateLimitPerSecond < 0 || c.RateLimitBurst < 0:
		return fmt.Errorf("%w: rate limits must be non-negative", ErrInvalidConfig)
	case !logging.ValidLevel(c.LogLevel):
		return fmt.Errorf("%w: invalid log level %q (valid: debug, info, warn, error)", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// ApplyTuning copies the clock settings that were set onto a catalog. Unset
// ones leave the catalog's own tuning in place.
func (c Config) ApplyTuning(cat *catalog.Catalog) {
	if c.TickDuration > 0 {
		cat.Tuning.TickDuration = c.TickDuration
	}
	if c.MaxTicksPerPass > 0 {
		cat.Tuning.MaxTicksPerPass = c.MaxTicksPerPass
	}
}

func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"SKYNATION_HTTP_ADDR":       &cfg.HTTPAddr,
		"SKYNATION_NOTIFY_ADDR":     &cfg.NotifyAddr,
		"SKYNATION_DB_DSN":          &cfg.DatabaseDSN,
		"SKYNATION_MIGRATIONS_DIR":  &cfg.MigrationsDir,
		"SKYNATION_SNAPSHOT_PATH":   &cfg.SnapshotPath,
		"SKYNATION_CATALOG_FILE":    &cfg.CatalogFile,
		"SKYNATION_LOG_LEVEL":       &cfg.LogLevel,
		"SKYNATION_SEED_STATION_ID": &cfg.SeedStationID,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	durations := map[string]*time.Duration{
		"SKYNATION_TICK_DURATION": &cfg.TickDuration,
		"SKYNATION_ACCOUNT_EVERY": &cfg.AccountEvery,
	}
	for key, dst := range durations {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"SKYNATION_MAX_TICKS_PER_PASS": &cfg.MaxTicksPerPass,
		"SKYNATION_PARALLELISM":        &cfg.Parallelism,
		"SKYNATION_RATE_LIMIT_BURST":   &cfg.RateLimitBurst,
	}
	for key, dst := range ints {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
			*dst = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("SKYNATION_RATE_LIMIT_PER_SECOND")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: SKYNATION_RATE_LIMIT_PER_SECOND: %v", ErrInvalidConfig, err)
		}
		cfg.RateLimitPerSecond = f
	}
	if v := strings.TrimSpace(os.Getenv("SKYNATION_SEED_STATION_RNG")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SKYNATION_SEED_STATION_RNG: %v", ErrInvalidConfig, err)
		}
		cfg.SeedStationRNG = n
	}
	return nil
}
