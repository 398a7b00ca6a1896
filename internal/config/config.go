package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSortSize = 20000
	DefaultSortMin  = -1e40
	DefaultSortMax  = 1e40
	DefaultPushes   = 32
	DefaultLevel    = "info"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Log  LogConfig  `yaml:"log"`
	Sort SortConfig `yaml:"sort"`
	Grow GrowConfig `yaml:"grow"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SortConfig drives the random-fill sorting scenario. Seed 0 picks a
// time-based seed.
type SortConfig struct {
	Size int     `yaml:"size"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Seed uint64  `yaml:"seed"`
}

type GrowConfig struct {
	Reserve int `yaml:"reserve"`
	Pushes  int `yaml:"pushes"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: DefaultLevel},
		Sort: SortConfig{
			Size: DefaultSortSize,
			Min:  DefaultSortMin,
			Max:  DefaultSortMax,
		},
		Grow: GrowConfig{Pushes: DefaultPushes},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Sort.Size < 0 {
		return fmt.Errorf("%w: sort.size %d < 0", ErrInvalid, c.Sort.Size)
	}
	if !(c.Sort.Min < c.Sort.Max) {
		return fmt.Errorf("%w: sort.min %g must be below sort.max %g", ErrInvalid, c.Sort.Min, c.Sort.Max)
	}
	if c.Grow.Reserve < 0 || c.Grow.Pushes < 0 {
		return fmt.Errorf("%w: grow.reserve and grow.pushes must not be negative", ErrInvalid)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Logger builds a zap logger for the configured level and mode.
func (c LogConfig) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
