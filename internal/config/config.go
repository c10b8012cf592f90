// Package config loads solver and logging settings for the command line.
//
// Sources are layered with koanf, lowest precedence first: built-in
// defaults, the YAML file (opti.yaml unless --config names another), OPTI_
// environment variables and explicitly set flags. Nested keys in the
// environment use a double underscore, e.g. OPTI_SOLVER__MAX_ITER=50.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/born-ml/opti/internal/logging"
	"github.com/born-ml/opti/internal/optim"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = "opti.yaml"

const envPrefix = "OPTI_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full CLI configuration.
type Config struct {
	Verbose bool         `koanf:"verbose"`
	Solver  SolverConfig `koanf:"solver"`
	Log     LogConfig    `koanf:"log"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// SolverConfig mirrors optim.Config.
type SolverConfig struct {
	Method                 string  `koanf:"method"`
	Tolerance              float64 `koanf:"tolerance"`
	ConstraintTolerance    float64 `koanf:"constraint_tolerance"`
	AcceptableTolerance    float64 `koanf:"acceptable_tolerance"`
	InfeasibilityTolerance float64 `koanf:"infeasibility_tolerance"`
	MaxIterations          int     `koanf:"max_iter"`
	MaxInnerIterations     int     `koanf:"max_inner_iter"`
	InitialPenalty         float64 `koanf:"initial_penalty"`
	PenaltyGrowth          float64 `koanf:"penalty_growth"`
	MaxPenalty             float64 `koanf:"max_penalty"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"verbose":    "verbose",
	"method":     "solver.method",
	"tolerance":  "solver.tolerance",
	"max-iter":   "solver.max_iter",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Default returns the built-in configuration.
func Default() *Config {
	d := optim.DefaultConfig()
	return &Config{
		Verbose: true,
		Solver: SolverConfig{
			Method:                 string(d.Method),
			Tolerance:              d.Tolerance,
			ConstraintTolerance:    d.ConstraintTolerance,
			AcceptableTolerance:    d.AcceptableTolerance,
			InfeasibilityTolerance: d.InfeasibilityTolerance,
			MaxIterations:          d.MaxIterations,
			MaxInnerIterations:     d.MaxInnerIterations,
			InitialPenalty:         d.InitialPenalty,
			PenaltyGrowth:          d.PenaltyGrowth,
			MaxPenalty:             d.MaxPenalty,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatText,
		},
	}
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"verbose":                        d.Verbose,
		"solver.method":                  d.Solver.Method,
		"solver.tolerance":               d.Solver.Tolerance,
		"solver.constraint_tolerance":    d.Solver.ConstraintTolerance,
		"solver.acceptable_tolerance":    d.Solver.AcceptableTolerance,
		"solver.infeasibility_tolerance": d.Solver.InfeasibilityTolerance,
		"solver.max_iter":                d.Solver.MaxIterations,
		"solver.max_inner_iter":          d.Solver.MaxInnerIterations,
		"solver.initial_penalty":         d.Solver.InitialPenalty,
		"solver.penalty_growth":          d.Solver.PenaltyGrowth,
		"solver.max_penalty":             d.Solver.MaxPenalty,
		"log.level":                      d.Log.Level,
		"log.format":                     d.Log.Format,
	}
}

// Load reads the configuration. path may be empty, in which case
// DefaultFile is used if it exists. Only flags marked as changed override
// lower layers; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	used := path
	if used == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			used = DefaultFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("config: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	s := c.Solver
	if _, err := optim.ParseMethod(s.Method); err != nil {
		return fmt.Errorf("%w: solver.method: %w", ErrInvalid, err)
	}
	positive := []struct {
		key string
		v   float64
	}{
		{"solver.tolerance", s.Tolerance},
		{"solver.constraint_tolerance", s.ConstraintTolerance},
		{"solver.acceptable_tolerance", s.AcceptableTolerance},
		{"solver.infeasibility_tolerance", s.InfeasibilityTolerance},
		{"solver.initial_penalty", s.InitialPenalty},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, p.key, p.v)
		}
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("%w: solver.max_iter must be positive, got %d", ErrInvalid, s.MaxIterations)
	}
	if s.MaxInnerIterations <= 0 {
		return fmt.Errorf("%w: solver.max_inner_iter must be positive, got %d", ErrInvalid, s.MaxInnerIterations)
	}
	if !(s.PenaltyGrowth > 1) {
		return fmt.Errorf("%w: solver.penalty_growth must exceed 1, got %g", ErrInvalid, s.PenaltyGrowth)
	}
	if s.MaxPenalty < s.InitialPenalty {
		return fmt.Errorf("%w: solver.max_penalty %g below initial_penalty %g", ErrInvalid, s.MaxPenalty, s.InitialPenalty)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// ToOptim converts the solver settings. Logger and Observer are left unset.
func (s SolverConfig) ToOptim() optim.Config {
	method, err := optim.ParseMethod(s.Method)
	if err != nil {
		method = optim.MethodBFGS
	}
	return optim.Config{
		Tolerance:              s.Tolerance,
		ConstraintTolerance:    s.ConstraintTolerance,
		AcceptableTolerance:    s.AcceptableTolerance,
		InfeasibilityTolerance: s.InfeasibilityTolerance,
		MaxIterations:          s.MaxIterations,
		MaxInnerIterations:     s.MaxInnerIterations,
		InitialPenalty:         s.InitialPenalty,
		PenaltyGrowth:          s.PenaltyGrowth,
		MaxPenalty:             s.MaxPenalty,
		Method:                 method,
	}
}
