package config

import "time"

// TelemetryCfg configures the periodic structured-logging sampler
// (metrics/telemetry.Logs). If nil, no sampling loop is started.
type TelemetryCfg struct {
	// Interval between samples. Example: "10s".
	Interval time.Duration `yaml:"interval"`

	// LogLevel is the minimum slog level at which samples are emitted:
	// "debug", "info", "warn", or "error".
	LogLevel string `yaml:"log_level"`
}

func (cfg *TelemetryCfg) Enabled() bool { return cfg != nil }
