package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/symcore/pkg/property"
)

var validate = validator.New()

// Config holds all parameters for a soak run.
type Config struct {
	Pool            string           `yaml:"pool" json:"pool" validate:"required"`
	Strategy        string           `yaml:"strategy" json:"strategy" validate:"required"`
	Properties      []string         `yaml:"properties" json:"properties,omitempty"` // empty = all
	Population      int              `yaml:"population" json:"population" validate:"gte=1,lte=100000"`
	Generations     int              `yaml:"generations" json:"generations" validate:"gte=0"` // 0 = until cancelled
	Seed            int64            `yaml:"seed" json:"seed"`                                // 0 = random
	Workers         int              `yaml:"workers" json:"workers" validate:"gte=1,lte=1024"`
	Format          string           `yaml:"format" json:"format" validate:"oneof=text json latex"`
	Verbose         bool             `yaml:"verbose" json:"verbose"`
	Weights         property.Weights `yaml:"weights" json:"weights"`
	StagnationLimit int              `yaml:"stagnation_limit" json:"stagnation_limit" validate:"gte=0"`
	MaxFailures     int              `yaml:"max_failures" json:"max_failures" validate:"gte=0"` // 0 = unlimited
	ShrinkSteps     int              `yaml:"shrink_steps" json:"shrink_steps" validate:"gte=0,lte=10000"`
	OutDir          string           `yaml:"out_dir" json:"out_dir,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Pool:            "moderate",
		Strategy:        "tournament",
		Population:      100,
		Generations:     50,
		Seed:            0,
		Workers:         runtime.NumCPU(),
		Format:          "text",
		Weights:         property.DefaultWeights(),
		StagnationLimit: 20,
		ShrinkSteps:     200,
	}
}

// Validate checks the struct constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig loads configuration from file and environment. A missing file
// keeps the defaults; environment variables override file values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadConfigFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadConfigFromEnv(cfg *Config) {
	if v := os.Getenv("SYMCORE_POOL"); v != "" {
		cfg.Pool = v
	}
	if v := os.Getenv("SYMCORE_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	if v := os.Getenv("SYMCORE_PROPERTIES"); v != "" {
		cfg.Properties = splitList(v)
	}
	envInt("SYMCORE_POPULATION", &cfg.Population)
	envInt("SYMCORE_GENERATIONS", &cfg.Generations)
	envInt("SYMCORE_WORKERS", &cfg.Workers)
	envInt("SYMCORE_STAGNATION_LIMIT", &cfg.StagnationLimit)
	envInt("SYMCORE_MAX_FAILURES", &cfg.MaxFailures)
	envInt("SYMCORE_SHRINK_STEPS", &cfg.ShrinkSteps)
	if v := os.Getenv("SYMCORE_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = i
		}
	}
	if v := os.Getenv("SYMCORE_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("SYMCORE_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
	if v := os.Getenv("SYMCORE_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
