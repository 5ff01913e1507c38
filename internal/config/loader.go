package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if KAYFABE_CONFIG is set
//  3. env (prefix KAYFABE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("KAYFABE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: KAYFABE_LOG_LEVEL, KAYFABE_QUEUE_SIZE, ...
	// Map env keys like KAYFABE_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("KAYFABE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "kayfabe_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DefaultMode {
	case "advanced", "simple":
	default:
		return fmt.Errorf("%w: default_mode must be advanced or simple, got %q", ErrInvalidConfig, c.DefaultMode)
	}
	if c.MinMomentumShifts < 0 || c.MaxMomentumShifts < c.MinMomentumShifts {
		return fmt.Errorf("%w: momentum shift bounds %d..%d", ErrInvalidConfig, c.MinMomentumShifts, c.MaxMomentumShifts)
	}
	if c.MomentumGainMax < c.MomentumGainMin {
		return fmt.Errorf("%w: momentum gain bounds %.0f..%.0f", ErrInvalidConfig, c.MomentumGainMin, c.MomentumGainMax)
	}
	if c.MaxInjuryChance < 0 || c.MaxInjuryChance > 100 {
		return fmt.Errorf("%w: max_injury_chance must be within 0..100, got %.1f", ErrInvalidConfig, c.MaxInjuryChance)
	}
	if c.RefereeIncidentCap < 0 || c.RefereeIncidentCap > 100 {
		return fmt.Errorf("%w: referee_incident_cap must be within 0..100, got %.1f", ErrInvalidConfig, c.RefereeIncidentCap)
	}
	if len(c.FinishWeights) == 0 || len(c.SimpleFinishWeights) == 0 {
		return fmt.Errorf("%w: finish weight tables must not be empty", ErrInvalidConfig)
	}
	return nil
}
