package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root of the daemon's YAML configuration. Any field can
// additionally be overridden through POSEOVERLAY_* environment variables,
// which is how secrets (broker password, storage token) are expected to
// arrive in deployments.
type Config struct {
	Overlay   OverlayConfig   `yaml:"overlay"`
	Runtime   RuntimeConfig   `yaml:"runtime"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// OverlayConfig contains overlay behaviour settings.
type OverlayConfig struct {
	// Enabled determines whether the overlay starts visible.
	Enabled bool `yaml:"enabled"`

	// UpdateIntervalMs is the minimum time between display refreshes,
	// in milliseconds. Frames arriving sooner are skipped.
	UpdateIntervalMs int `yaml:"update_interval_ms"`

	// SavePath is the file captured points are written to.
	SavePath string `yaml:"save_path"`

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string `yaml:"screenshot_dir"`

	// NotificationSeconds is how long on-screen notifications stay
	// fully visible before fading.
	NotificationSeconds int `yaml:"notification_seconds"`

	// TelemetryDivisor publishes every Nth display update to the
	// telemetry sinks. 0 disables pose telemetry.
	TelemetryDivisor int `yaml:"telemetry_divisor"`
}

// RuntimeConfig selects and configures the tracking runtime backend.
type RuntimeConfig struct {
	// Backend names the runtime implementation. Only "sim" is currently
	// supported.
	Backend string `yaml:"backend"`

	Sim SimConfig `yaml:"sim"`
}

// SimConfig configures the simulated tracking runtime.
type SimConfig struct {
	Headset      bool  `yaml:"headset"`
	Controllers  int   `yaml:"controllers"`
	Trackers     int   `yaml:"trackers"`
	BaseStations int   `yaml:"base_stations"`
	Seed         int64 `yaml:"seed"`
}

// DatabaseConfig holds the SQLite file location and connection tuning.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig describes the telemetry broker connection.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig identifies the broker endpoint.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig carries broker credentials. Prefer the
// POSEOVERLAY_MQTT_PASSWORD environment variable over the YAML field.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig tunes the broker reconnect backoff, in seconds.
// MaxAttempts of 0 retries forever.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// APIConfig holds the debug HTTP server's bind address, timeouts, and
// browser-access policy.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig sets the HTTP server timeouts, in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig lists the origins, methods, and headers the debug API
// accepts from browsers.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig tunes the live-stream endpoint.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// InfluxDBConfig describes the optional pose-history sink. When Enabled
// is false the rest of the section is ignored.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig selects log level, format, and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load builds the effective configuration for the daemon. Hardcoded
// defaults are applied first, then the YAML file at path, and finally
// any POSEOVERLAY_* environment variables, so later layers win. The
// merged result is validated before being returned.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// defaultConfig is the baseline a missing or sparse YAML file falls back
// to: simulated runtime, local SQLite, local broker, telemetry sinks off.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Overlay = OverlayConfig{
		UpdateIntervalMs:    10,
		SavePath:            "./data/points.txt",
		ScreenshotDir:       "./data",
		NotificationSeconds: 2,
		TelemetryDivisor:    10,
	}
	cfg.Runtime = RuntimeConfig{
		Backend: "sim",
		Sim:     SimConfig{Headset: true, Controllers: 2, BaseStations: 2},
	}
	cfg.Database = DatabaseConfig{
		Path:        "./data/poseoverlay.db",
		WALMode:     true,
		BusyTimeout: 5,
	}
	cfg.MQTT = MQTTConfig{
		Broker:    MQTTBrokerConfig{Host: "localhost", Port: 1883, ClientID: "poseoverlay"},
		QoS:       1,
		Reconnect: MQTTReconnectConfig{InitialDelay: 1, MaxDelay: 60},
	}
	cfg.API = APIConfig{
		Host:     "127.0.0.1",
		Port:     8080,
		Timeouts: APITimeoutConfig{Read: 30, Write: 30, Idle: 60},
	}
	cfg.WebSocket = WebSocketConfig{
		Path:           "/ws",
		MaxMessageSize: 8192,
		PingInterval:   30,
		PongTimeout:    10,
	}
	cfg.Logging = LoggingConfig{Level: "info", Format: "json", Output: "stdout"}
	return cfg
}

// applyEnvOverrides lets POSEOVERLAY_* environment variables trump the
// YAML file. Only the operationally useful knobs are exposed this way;
// a malformed numeric value is ignored rather than failing startup.
func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"POSEOVERLAY_OVERLAY_SAVE_PATH", &cfg.Overlay.SavePath},
		{"POSEOVERLAY_OVERLAY_SCREENSHOT_DIR", &cfg.Overlay.ScreenshotDir},
		{"POSEOVERLAY_DATABASE_PATH", &cfg.Database.Path},
		{"POSEOVERLAY_MQTT_HOST", &cfg.MQTT.Broker.Host},
		{"POSEOVERLAY_MQTT_USERNAME", &cfg.MQTT.Auth.Username},
		{"POSEOVERLAY_MQTT_PASSWORD", &cfg.MQTT.Auth.Password},
		{"POSEOVERLAY_API_HOST", &cfg.API.Host},
		{"POSEOVERLAY_INFLUXDB_TOKEN", &cfg.InfluxDB.Token},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.target = v
		}
	}

	if v := os.Getenv("POSEOVERLAY_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}
}

// Validate reports every problem with the merged configuration at once,
// joined into a single error, so operators fix one restart's worth of
// mistakes rather than one per restart.
func (c *Config) Validate() error {
	var problems []string
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Overlay.UpdateIntervalMs < 0 {
		bad("overlay.update_interval_ms must not be negative")
	}
	if c.Overlay.SavePath == "" {
		bad("overlay.save_path is required")
	}
	if c.Overlay.TelemetryDivisor < 0 {
		bad("overlay.telemetry_divisor must not be negative")
	}
	if c.Runtime.Backend != "sim" {
		bad("runtime.backend %q is not supported (want \"sim\")", c.Runtime.Backend)
	}
	if c.Runtime.Sim.Controllers < 0 || c.Runtime.Sim.Trackers < 0 || c.Runtime.Sim.BaseStations < 0 {
		bad("runtime.sim device counts must not be negative")
	}
	if c.Database.Path == "" {
		bad("database.path is required")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		bad("mqtt.qos must be 0, 1, or 2")
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		bad("api.port must be between 1 and 65535")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// UpdateInterval returns the overlay display refresh interval as a Duration.
func (o OverlayConfig) UpdateInterval() time.Duration {
	return time.Duration(o.UpdateIntervalMs) * time.Millisecond
}

// NotificationDuration returns how long notifications stay visible.
func (o OverlayConfig) NotificationDuration() time.Duration {
	return time.Duration(o.NotificationSeconds) * time.Second
}

// GetReadTimeout returns api.timeouts.read as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns api.timeouts.write as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns api.timeouts.idle as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
