// Package config loads the application configuration from a YAML or JSON
// file with optional environment overrides (K_ prefix, __ as separator).
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

	"github.com/solbatt/solbatt/core/factory"
	"github.com/solbatt/solbatt/core/metrics"
	"github.com/solbatt/solbatt/core/model"
	"github.com/solbatt/solbatt/core/optimizer"
	"github.com/solbatt/solbatt/infra/mqtt"
)

type Config struct {
	Battery   model.BatteryConfig  `json:"battery"`
	EV        model.EVConfig       `json:"ev"`
	Optimizer optimizer.Config     `json:"optimizer"`
	Schedule  ScheduleConfig       `json:"schedule"`
	Prices    PricesConfig         `json:"prices"`
	Forecast  factory.ModuleConfig `json:"forecast"`
	MQTT      mqtt.Config          `json:"mqtt"`
	Metrics   metrics.Config       `json:"metrics"`
	Logging   LoggingConfig        `json:"logging"`
}

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
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Battery.SetDefaults()
	cfg.EV.SetDefaults()
	cfg.Optimizer.SetDefaults()
	cfg.Schedule.SetDefaults()
	cfg.Prices.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Battery.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EV.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Schedule.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Prices.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
