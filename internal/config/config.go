package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"maternal-vitals/internal/model"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = 5000
	DefaultSource     = "../maternal_training_data.csv"
	DefaultInterval   = 120 * time.Second
	DefaultKafkaTopic = "patient-vitals"
)

// Config is the on-disk configuration shape (YAML). Every field is optional;
// Default() holds the values the server runs with when no file is given.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Log       LogConfig       `yaml:"log"`
	Publish   PublishConfig   `yaml:"publish"`
}

type ServerConfig struct {
	Port int `yaml:"port" validate:"min=1,max=65535"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode" validate:"oneof=debug release test"`
}

type DataConfig struct {
	// Source is a .csv or .xlsx file. Relative paths are resolved against the
	// config file directory first, then the working directory.
	Source string `yaml:"source" validate:"required"`
}

type SimulatorConfig struct {
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
	// Seed for the random source; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
	// Profiles drive record slots 0, 1 and 2 in order.
	Profiles []model.Profile `yaml:"profiles" validate:"omitempty,len=3,dive"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

type PublishConfig struct {
	Kafka KafkaConfig `yaml:"kafka"`
}

type KafkaConfig struct {
	// Publishing is disabled while Brokers is empty.
	Brokers []string `yaml:"brokers" validate:"omitempty,dive,hostname_port"`
	Topic   string   `yaml:"topic" validate:"required_with=Brokers"`
	Source  string   `yaml:"source"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort, Mode: "debug"},
		Data:   DataConfig{Source: DefaultSource},
		Simulator: SimulatorConfig{
			Interval: DefaultInterval,
			Profiles: model.DefaultProfiles(),
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Publish: PublishConfig{Kafka: KafkaConfig{
			Topic:  DefaultKafkaTopic,
			Source: "maternal-vitals",
		}},
	}
}

// Load returns Default() overlaid with the YAML file at path (if any) and
// validates the result. An empty path is not an error.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.Data.Source = resolvePath(path, c.Data.Source)
	return c, nil
}

// resolvePath prefers interpreting relative paths as relative to the config
// file directory, but falls back to the provided path (relative to cwd) if
// that doesn't exist.
func resolvePath(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(filepath.Dir(configPath), p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

var validate = validator.New()

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	for _, p := range c.Simulator.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}
	}
	return nil
}
