// Package config loads the YAML deployment configuration for a cache
// process: instance capacities, the telemetry sampling interval, and which
// metrics.Sink backends to wire up.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config groups configuration for all cache instances a process runs.
// Each top-level section can be independently omitted by leaving it nil.
type Config struct {
	Block     *CacheCfg     `yaml:"block"`
	Point     *CacheCfg     `yaml:"point"`
	Telemetry *TelemetryCfg `yaml:"telemetry"`
	Metrics   *MetricsCfg   `yaml:"metrics"`
}

// defaultCapacityBytes is applied when a CacheCfg is present but its
// capacity is left unset (or zero) in YAML.
const defaultCapacityBytes = 256 << 20

func (cfg *Config) adjust() {
	if cfg.Block != nil && cfg.Block.CapacityBytes == 0 {
		cfg.Block.CapacityBytes = defaultCapacityBytes
	}
	if cfg.Point != nil && cfg.Point.CapacityBytes == 0 {
		cfg.Point.CapacityBytes = defaultCapacityBytes
	}
}

// LoadConfig reads and parses the YAML config file at path.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.adjust()

	return cfg, nil
}
