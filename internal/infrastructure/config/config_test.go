package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig drops a YAML document into a temp dir and returns its path.
func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
overlay:
  enabled: true
  update_interval_ms: 20
  save_path: "/tmp/bench-points.txt"
runtime:
  backend: "sim"
  sim:
    headset: true
    controllers: 2
database:
  path: "/tmp/bench.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "mqtt.bench.local"
    port: 1883
    client_id: "bench-rig"
  qos: 1
api:
  host: "127.0.0.1"
  port: 8080
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"Overlay.Enabled", cfg.Overlay.Enabled, true},
		{"Overlay.UpdateIntervalMs", cfg.Overlay.UpdateIntervalMs, 20},
		{"Overlay.SavePath", cfg.Overlay.SavePath, "/tmp/bench-points.txt"},
		{"Database.Path", cfg.Database.Path, "/tmp/bench.db"},
		{"MQTT.Broker.Host", cfg.MQTT.Broker.Host, "mqtt.bench.local"},
		{"MQTT.Broker.ClientID", cfg.MQTT.Broker.ClientID, "bench-rig"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoad_FileValuesOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `
overlay:
  update_interval_ms: 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Overlay.UpdateIntervalMs != 50 {
		t.Errorf("Overlay.UpdateIntervalMs = %d, want 50 (file should win over default)", cfg.Overlay.UpdateIntervalMs)
	}
	// Untouched sections keep their defaults.
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port = %d, want default 1883", cfg.MQTT.Broker.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() with missing file: want error, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "overlay: [not: closed")
	if _, err := Load(path); err == nil {
		t.Error("Load() with malformed YAML: want error, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
overlay:
  save_path: ""
database:
  path: "/tmp/bench.db"
api:
  port: 8080
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() with empty overlay.save_path: want error, got nil")
	}
	if !strings.Contains(err.Error(), "save_path") {
		t.Errorf("Load() error = %v, want mention of save_path", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Overlay: OverlayConfig{
				UpdateIntervalMs: 10,
				SavePath:         "/tmp/bench-points.txt",
			},
			Runtime:  RuntimeConfig{Backend: "sim"},
			Database: DatabaseConfig{Path: "/data/poseoverlay.db"},
			MQTT:     MQTTConfig{QoS: 1},
			API:      APIConfig{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"negative update interval", func(c *Config) { c.Overlay.UpdateIntervalMs = -1 }, true},
		{"missing save path", func(c *Config) { c.Overlay.SavePath = "" }, true},
		{"negative telemetry divisor", func(c *Config) { c.Overlay.TelemetryDivisor = -1 }, true},
		{"unknown runtime backend", func(c *Config) { c.Runtime.Backend = "openvr" }, true},
		{"negative device count", func(c *Config) { c.Runtime.Sim.Controllers = -1 }, true},
		{"missing database path", func(c *Config) { c.Database.Path = "" }, true},
		{"invalid QoS", func(c *Config) { c.MQTT.QoS = 3 }, true},
		{"invalid port low", func(c *Config) { c.API.Port = 0 }, true},
		{"invalid port high", func(c *Config) { c.API.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateReportsAllProblems(t *testing.T) {
	cfg := &Config{} // everything missing or zero
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() on zero config: want error, got nil")
	}
	for _, key := range []string{"save_path", "runtime.backend", "database.path", "api.port"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Validate() error missing %q: %v", key, err)
		}
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := &Config{
		Overlay: OverlayConfig{UpdateIntervalMs: 10, NotificationSeconds: 3},
		API:     APIConfig{Timeouts: APITimeoutConfig{Read: 30, Write: 45, Idle: 60}},
	}

	durations := []struct {
		name string
		got  float64
		want float64
	}{
		{"UpdateInterval ms", float64(cfg.Overlay.UpdateInterval().Milliseconds()), 10},
		{"NotificationDuration s", cfg.Overlay.NotificationDuration().Seconds(), 3},
		{"GetReadTimeout s", cfg.GetReadTimeout().Seconds(), 30},
		{"GetWriteTimeout s", cfg.GetWriteTimeout().Seconds(), 45},
		{"GetIdleTimeout s", cfg.GetIdleTimeout().Seconds(), 60},
	}
	for _, d := range durations {
		if d.got != d.want {
			t.Errorf("%s = %v, want %v", d.name, d.got, d.want)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"POSEOVERLAY_OVERLAY_SAVE_PATH":      "/custom/points.txt",
		"POSEOVERLAY_OVERLAY_SCREENSHOT_DIR": "/custom/shots",
		"POSEOVERLAY_DATABASE_PATH":          "/custom/bench.db",
		"POSEOVERLAY_MQTT_HOST":              "broker.bench.local",
		"POSEOVERLAY_MQTT_USERNAME":          "bench",
		"POSEOVERLAY_MQTT_PASSWORD":          "hunter2",
		"POSEOVERLAY_API_HOST":               "192.168.1.1",
		"POSEOVERLAY_API_PORT":               "9090",
		"POSEOVERLAY_INFLUXDB_TOKEN":         "secret-token",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	got := map[string]string{
		"POSEOVERLAY_OVERLAY_SAVE_PATH":      cfg.Overlay.SavePath,
		"POSEOVERLAY_OVERLAY_SCREENSHOT_DIR": cfg.Overlay.ScreenshotDir,
		"POSEOVERLAY_DATABASE_PATH":          cfg.Database.Path,
		"POSEOVERLAY_MQTT_HOST":              cfg.MQTT.Broker.Host,
		"POSEOVERLAY_MQTT_USERNAME":          cfg.MQTT.Auth.Username,
		"POSEOVERLAY_MQTT_PASSWORD":          cfg.MQTT.Auth.Password,
		"POSEOVERLAY_API_HOST":               cfg.API.Host,
		"POSEOVERLAY_INFLUXDB_TOKEN":         cfg.InfluxDB.Token,
	}
	for key, want := range env {
		if key == "POSEOVERLAY_API_PORT" {
			continue
		}
		if got[key] != want {
			t.Errorf("%s: got %q, want %q", key, got[key], want)
		}
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
}

func TestApplyEnvOverrides_BadPort(t *testing.T) {
	cfg := defaultConfig()
	want := cfg.API.Port

	t.Setenv("POSEOVERLAY_API_PORT", "not-a-number")
	applyEnvOverrides(cfg)

	if cfg.API.Port != want {
		t.Errorf("API.Port = %d, want %d (non-numeric override should be ignored)", cfg.API.Port, want)
	}
}

func TestApplyEnvOverrides_EmptyValuesIgnored(t *testing.T) {
	cfg := defaultConfig()
	want := cfg.Database.Path

	t.Setenv("POSEOVERLAY_DATABASE_PATH", "")
	applyEnvOverrides(cfg)

	if cfg.Database.Path != want {
		t.Errorf("Database.Path = %q, want %q (empty override should be ignored)", cfg.Database.Path, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Overlay.SavePath == "" {
		t.Error("defaultConfig should have non-empty Overlay.SavePath")
	}
	if cfg.Overlay.UpdateIntervalMs != 10 {
		t.Errorf("defaultConfig Overlay.UpdateIntervalMs = %d, want 10", cfg.Overlay.UpdateIntervalMs)
	}
	if cfg.Runtime.Backend != "sim" {
		t.Errorf("defaultConfig Runtime.Backend = %q, want \"sim\"", cfg.Runtime.Backend)
	}
	if cfg.Database.Path == "" {
		t.Error("defaultConfig should have non-empty Database.Path")
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("defaultConfig MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("defaultConfig API.Port = %d, want 8080", cfg.API.Port)
	}
	if cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		t.Error("defaultConfig telemetry sinks should default to disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig Validate() error = %v", err)
	}
}
