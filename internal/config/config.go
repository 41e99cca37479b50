package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all xrplay configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Simulation SimulationConfig `yaml:"simulation"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
}

// LoggingConfig configures the global zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, caller and stack traces on warn
}

// SimulationConfig configures scenario playback.
type SimulationConfig struct {
	// FixedStep is the frame delta in seconds.
	FixedStep float32 `yaml:"fixed_step"`
	// MaxFrames aborts a scenario that runs longer than this.
	MaxFrames int `yaml:"max_frames"`
}

// DictionaryConfig points at a shared word list. When Path is empty every
// WordContainer uses its own inline words.
type DictionaryConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Simulation: SimulationConfig{
			FixedStep: 1.0 / 60,
			MaxFrames: 60 * 60 * 10,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error; an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv("XRPLAY_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if step := os.Getenv("XRPLAY_FIXED_STEP"); step != "" {
		v, err := strconv.ParseFloat(step, 32)
		if err != nil {
			return fmt.Errorf("XRPLAY_FIXED_STEP: %w", err)
		}
		c.Simulation.FixedStep = float32(v)
	}
	if path := os.Getenv("XRPLAY_DICTIONARY"); path != "" {
		c.Dictionary.Path = path
	}
	return nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Logging.ParseLevel(); err != nil {
		return err
	}
	if c.Simulation.FixedStep <= 0 {
		return fmt.Errorf("simulation.fixed_step must be positive, got %v", c.Simulation.FixedStep)
	}
	if c.Simulation.MaxFrames <= 0 {
		return fmt.Errorf("simulation.max_frames must be positive, got %d", c.Simulation.MaxFrames)
	}
	if c.Dictionary.Watch && c.Dictionary.Path == "" {
		return fmt.Errorf("dictionary.watch needs dictionary.path")
	}
	return nil
}

// ParseLevel parses Level into a zap level.
func (l LoggingConfig) ParseLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
