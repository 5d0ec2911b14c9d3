// Package config loads the planner configuration and household
// description from JSON or YAML files, with HEMS_-prefixed environment
// overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/hems/core/constraint"
	"github.com/kilianp07/hems/core/metrics"
	"github.com/kilianp07/hems/core/planner"
	"github.com/kilianp07/hems/core/reward"
)

// Config is the root configuration document.
type Config struct {
	Planner     planner.Config    `json:"planner"`
	Weights     reward.Weights    `json:"weights"`
	Constraints constraint.Config `json:"constraints"`
	Budget      BudgetConfig      `json:"budget"`
	Metrics     metrics.Config    `json:"metrics"`
	API         APIConfig         `json:"api"`
	History     HistoryConfig     `json:"history"`
	Monitoring  MonitoringConfig  `json:"monitoring"`
	Household   HouseholdConfig   `json:"household"`
}

// APIConfig configures the HTTP endpoint serving the latest plan.
type APIConfig struct {
	Addr  string `json:"addr"`
	Token string `json:"token"`
}

// SetDefaults applies the default listen address.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8088"
	}
}

// HistoryConfig configures the SQLite plan history store. An empty path
// disables persistence.
type HistoryConfig struct {
	Path string `json:"path"`
}

// MonitoringConfig configures error reporting.
type MonitoringConfig struct {
	SentryDSN        string  `json:"sentry_dsn"`
	Environment      string  `json:"environment"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
}

// BudgetConfig configures the budget controller.
type BudgetConfig struct {
	ToleranceKWh float64 `json:"tolerance_kwh"`
}

// SetDefaults applies the default tolerance.
func (c *BudgetConfig) SetDefaults() {
	if c.ToleranceKWh == 0 {
		c.ToleranceKWh = 0.5
	}
}

// Load reads, defaults and validates a configuration file. Environment
// variables of the form HEMS_section__key override file values.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("HEMS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "hems_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Planner.SetDefaults()
	cfg.Budget.SetDefaults()
	cfg.API.SetDefaults()
	cfg.Household.SetDefaults()
	if cfg.Weights == (reward.Weights{}) {
		cfg.Weights = reward.DefaultWeights()
	}
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Household.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
