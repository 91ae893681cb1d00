package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_AppliesDefaultsAndParsesYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	const yaml = `
block:
  capacity_bytes: 1048576
point: {}
telemetry:
  interval: 5s
  log_level: info
metrics:
  prometheus:
    addr: ":9090"
    namespace: ackey
  file:
    path: /tmp/ackey-metrics.txt
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Block.CapacityBytes != 1048576 {
		t.Fatalf("Block.CapacityBytes = %d, want 1048576", cfg.Block.CapacityBytes)
	}
	if cfg.Point.CapacityBytes != defaultCapacityBytes {
		t.Fatalf("Point.CapacityBytes = %d, want default %d", cfg.Point.CapacityBytes, defaultCapacityBytes)
	}
	if cfg.Telemetry.Interval.String() != "5s" {
		t.Fatalf("Telemetry.Interval = %v, want 5s", cfg.Telemetry.Interval)
	}
	if !cfg.Metrics.Prometheus.Enabled() || cfg.Metrics.Prometheus.Addr != ":9090" {
		t.Fatalf("Prometheus config not parsed: %+v", cfg.Metrics.Prometheus)
	}
	if !cfg.Metrics.File.Enabled() || cfg.Metrics.File.Path != "/tmp/ackey-metrics.txt" {
		t.Fatalf("File sink config not parsed: %+v", cfg.Metrics.File)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
