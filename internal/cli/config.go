package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/neurokit/morph/pkg/cache"
	"github.com/neurokit/morph/pkg/calibration"
)

// Config holds CLI configuration loaded from TOML.
type Config struct {
	Calibration CalibrationConfig `toml:"calibration"`
	Cache       CacheConfig       `toml:"cache"`
}

// CalibrationConfig selects where z resolutions come from.
type CalibrationConfig struct {
	// Source is one of "static", "mongo", "http".
	Source string `toml:"source"`

	// File is the static calibration TOML path (source = "static").
	File string `toml:"file"`

	// URL is the calibration service base URL (source = "http").
	URL string `toml:"url"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig holds MongoDB settings (source = "mongo").
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects the calibration lookup cache.
type CacheConfig struct {
	// Backend is one of "file", "redis", "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory (backend = "file").
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis settings (backend = "redis").
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// defaultConfigPath returns ~/.config/morph/config.toml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "morph", "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location
// when path is empty. A missing file yields a zero Config so commands
// work without any configuration.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// openCache builds the cache backend from cfg. The default backend is
// "file" under the user cache directory.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(base, "morph")
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// openCalibration builds the calibration source from cfg and wraps it
// with the configured cache. The returned cleanup releases any
// connections and must be called when the command finishes.
func openCalibration(ctx context.Context, cfg Config) (calibration.Source, func(), error) {
	var src calibration.Source
	cleanup := func() {}

	switch cfg.Calibration.Source {
	case "", "static":
		path := cfg.Calibration.File
		if path == "" {
			p, err := defaultConfigPath()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(filepath.Dir(p), "calibration.toml")
		}
		s, err := calibration.NewStaticSource(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load calibration file %s: %w", path, err)
		}
		src = s
	case "mongo":
		s, err := calibration.NewMongoSource(ctx, calibration.MongoConfig{
			URI:        cfg.Calibration.Mongo.URI,
			Database:   cfg.Calibration.Mongo.Database,
			Collection: cfg.Calibration.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to calibration store: %w", err)
		}
		src = s
		cleanup = func() { _ = s.Close(context.Background()) }
	case "http":
		if cfg.Calibration.URL == "" {
			return nil, nil, fmt.Errorf("calibration source %q requires url", cfg.Calibration.Source)
		}
		src = calibration.NewClient(cfg.Calibration.URL, nil)
	default:
		return nil, nil, fmt.Errorf("unknown calibration source %q", cfg.Calibration.Source)
	}

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	cached := calibration.NewCachedSource(src, c, 0)

	prev := cleanup
	cleanup = func() {
		_ = c.Close()
		prev()
	}
	return cached, cleanup, nil
}
