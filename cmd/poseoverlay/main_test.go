package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("POSEOVERLAY_CONFIG")
	defer os.Setenv("POSEOVERLAY_CONFIG", originalEnv)

	os.Setenv("POSEOVERLAY_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies run fails when the database path is
// empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
overlay:
  enabled: true
  save_path: "` + filepath.Join(tmpDir, "points.txt") + `"

database:
  path: ""

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("POSEOVERLAY_CONFIG")
	defer os.Setenv("POSEOVERLAY_CONFIG", originalEnv)
	os.Setenv("POSEOVERLAY_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with empty database path")
	}
}

// TestRun_StartupAndShutdown runs the full daemon (sim runtime, headless
// engine, no MQTT/InfluxDB) and cancels it shortly after startup.
func TestRun_StartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
overlay:
  enabled: true
  update_interval_ms: 10
  save_path: "` + filepath.Join(tmpDir, "points.txt") + `"
  screenshot_dir: "` + tmpDir + `"

runtime:
  backend: sim
  sim:
    headset: true
    controllers: 2

database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

api:
  host: "127.0.0.1"
  port: 18099
  timeouts:
    read: 30
    write: 60
    idle: 120

logging:
  level: error
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("POSEOVERLAY_CONFIG")
	defer os.Setenv("POSEOVERLAY_CONFIG", originalEnv)
	os.Setenv("POSEOVERLAY_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v, want clean shutdown", err)
	}
}

// TestRun_NoHeadsetFails verifies the fatal no-headset startup condition.
func TestRun_NoHeadsetFails(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
overlay:
  save_path: "` + filepath.Join(tmpDir, "points.txt") + `"

runtime:
  backend: sim
  sim:
    headset: false
    controllers: 2

database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("POSEOVERLAY_CONFIG")
	defer os.Setenv("POSEOVERLAY_CONFIG", originalEnv)
	os.Setenv("POSEOVERLAY_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail when the runtime has no headset")
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	originalEnv := os.Getenv("POSEOVERLAY_CONFIG")
	defer os.Setenv("POSEOVERLAY_CONFIG", originalEnv)

	os.Unsetenv("POSEOVERLAY_CONFIG")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	originalEnv := os.Getenv("POSEOVERLAY_CONFIG")
	defer os.Setenv("POSEOVERLAY_CONFIG", originalEnv)

	expected := "/custom/path/config.yaml"
	os.Setenv("POSEOVERLAY_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}
