package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/decaysim/internal/kinematics"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

const (
	DefaultMaxIterations = kinematics.DefaultMaxIterations
	DefaultTolerance     = kinematics.DefaultTolerance
	DefaultMassTolerance = 1e-2
	DefaultTheme         = "default"
	DefaultDataDir       = "runs"
	DefaultLogLevel      = "info"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DECAYSIM_"
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Engine    EngineConfig   `yaml:"engine"`
	Output    OutputConfig   `yaml:"output"`
	Particles []ParticleSpec `yaml:"particles"`
}

type EngineConfig struct {
	Seed           int64   `yaml:"seed" env:"SEED"`
	MaxIterations  int     `yaml:"max_iterations" env:"MAX_ITERATIONS"`
	Tolerance      float64 `yaml:"tolerance" env:"TOLERANCE"`
	ToleranceBasis string  `yaml:"tolerance_basis" env:"TOLERANCE_BASIS"`
	MassTolerance  float64 `yaml:"mass_tolerance" env:"MASS_TOLERANCE"`
}

type OutputConfig struct {
	Theme    string `yaml:"theme" env:"THEME"`
	DataDir  string `yaml:"data_dir" env:"DATA_DIR"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// ParticleSpec describes one catalogue root. Type accepts anything
// taxonomy.ParseSpecies does.
type ParticleSpec struct {
	Name       string    `yaml:"name,omitempty"`
	Type       string    `yaml:"type"`
	Px         float64   `yaml:"px"`
	Py         float64   `yaml:"py"`
	Pz         float64   `yaml:"pz"`
	Colour     string    `yaml:"colour,omitempty"`
	Anticolour string    `yaml:"anticolour,omitempty"`
	Deposits   []float64 `yaml:"deposits,omitempty"`
	Isolated   bool      `yaml:"isolated,omitempty"`
	Interacted bool      `yaml:"interacted,omitempty"`
	Borrowed   float64   `yaml:"borrowed,omitempty"`
	Decay      bool      `yaml:"decay,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxIterations:  DefaultMaxIterations,
			Tolerance:      DefaultTolerance,
			ToleranceBasis: kinematics.TargetBasis.String(),
			MassTolerance:  DefaultMassTolerance,
		},
		Output: OutputConfig{
			Theme:    DefaultTheme,
			DataDir:  DefaultDataDir,
			LogLevel: DefaultLogLevel,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

// ApplyEnv overrides engine and output settings from DECAYSIM_* variables.
// Unset variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	opts := env.Options{Prefix: EnvPrefix}
	if err := env.ParseWithOptions(&c.Engine, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := env.ParseWithOptions(&c.Output, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Basis() kinematics.Basis {
	return kinematics.ParseBasis(c.Engine.ToleranceBasis)
}

func (c *Config) Validate() error {
	e := c.Engine
	if e.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalid, e.MaxIterations)
	}
	if e.Tolerance <= 0 || e.Tolerance >= 1 {
		return fmt.Errorf("%w: tolerance must be in (0, 1), got %g", ErrInvalid, e.Tolerance)
	}
	if e.ToleranceBasis != "target" && e.ToleranceBasis != "assigned" {
		return fmt.Errorf("%w: tolerance_basis must be target or assigned, got %q", ErrInvalid, e.ToleranceBasis)
	}
	if e.MassTolerance <= 0 {
		return fmt.Errorf("%w: mass_tolerance must be positive, got %g", ErrInvalid, e.MassTolerance)
	}
	for i, p := range c.Particles {
		if _, _, err := taxonomy.ParseSpecies(p.Type); err != nil {
			return fmt.Errorf("%w: particles[%d]: %v", ErrInvalid, i, err)
		}
	}
	return nil
}
