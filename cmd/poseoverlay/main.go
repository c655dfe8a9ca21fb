// Pose Overlay - tracked-device pose debugging daemon
//
// This is the main entry point for the pose overlay. It enumerates the
// tracked-device runtime, builds the debug overlay in a headless scene
// engine, drives it with a frame ticker, and exposes the captured state
// through a local HTTP/WebSocket debug API with optional MQTT and InfluxDB
// telemetry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/trackworks/poseoverlay/migrations"

	"github.com/trackworks/poseoverlay/internal/api"
	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/infrastructure/config"
	"github.com/trackworks/poseoverlay/internal/infrastructure/database"
	"github.com/trackworks/poseoverlay/internal/infrastructure/influxdb"
	"github.com/trackworks/poseoverlay/internal/infrastructure/logging"
	"github.com/trackworks/poseoverlay/internal/infrastructure/mqtt"
	"github.com/trackworks/poseoverlay/internal/overlay"
	"github.com/trackworks/poseoverlay/internal/scene"
	"github.com/trackworks/poseoverlay/internal/telemetry"
	"github.com/trackworks/poseoverlay/internal/vr"
	"github.com/trackworks/poseoverlay/internal/vr/sim"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// defaultFrameInterval drives the headless engine when no display refresh
// interval is configured (roughly 90 Hz, a typical HMD refresh rate).
const defaultFrameInterval = 11 * time.Millisecond

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting pose overlay",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Capture store and session archive
	store := capture.NewStore()
	archive, err := capture.NewSQLiteRepository(db.DB)
	if err != nil {
		return fmt.Errorf("creating session archive: %w", err)
	}

	// Tracking runtime (config validation guarantees backend is "sim")
	var runtime vr.Runtime = sim.New(sim.Config{
		Headset:      cfg.Runtime.Sim.Headset,
		Controllers:  cfg.Runtime.Sim.Controllers,
		Trackers:     cfg.Runtime.Sim.Trackers,
		BaseStations: cfg.Runtime.Sim.BaseStations,
		Seed:         cfg.Runtime.Sim.Seed,
	})
	log.Info("simulated runtime created",
		"controllers", cfg.Runtime.Sim.Controllers,
		"trackers", cfg.Runtime.Sim.Trackers,
		"base_stations", cfg.Runtime.Sim.BaseStations,
	)

	// Headless scene engine, driven by the frame ticker below
	engine := scene.NewHeadless()

	// Telemetry sinks: MQTT, InfluxDB, WebSocket hub
	var sinks []overlay.PoseSink

	var publisher *telemetry.Publisher
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		var mqttErr error
		mqttClient, mqttErr = mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		mqttClient.SetLogger(log)

		publisher = telemetry.NewPublisher(mqttClient, log)
		sinks = append(sinks, publisher)
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		sinks = append(sinks, telemetry.NewRecorder(influxClient, log))
	} else {
		log.Info("InfluxDB disabled")
	}

	// WebSocket hub, shared between the API server and the overlay sink
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)
	sinks = append(sinks, api.NewHubSink(hub))

	// Assemble the overlay (fails fast when the runtime has no headset)
	ov, err := overlay.New(overlay.Deps{
		Config:  cfg.Overlay,
		Engine:  engine,
		Runtime: runtime,
		Store:   store,
		Archive: archive,
		Sinks:   sinks,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("assembling overlay: %w", err)
	}
	defer ov.Close()

	if startErr := ov.Start(ctx); startErr != nil {
		return fmt.Errorf("starting overlay: %w", startErr)
	}

	// Remote control and retained state on MQTT
	if publisher != nil {
		if subErr := publisher.SubscribeCommands(ov.SetEnabled); subErr != nil {
			log.Warn("subscribing to overlay commands failed", "error", subErr)
		}
		publisher.PublishEnabled(ov.Enabled())
	}

	// Debug API server
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Logger:   log,
		Overlay:  ov,
		Store:    store,
		Sessions: archive,
		MQTT:     mqttClient,
		DB:       db,
		Hub:      hub,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, driving frames until shutdown")

	// Controller button edges from the runtime feed the binding table
	var inputs <-chan vr.InputEvent
	if src, ok := runtime.(vr.InputSource); ok {
		inputs = src.Events()
	}

	// Frame loop: drive the engine at the configured display cadence
	frameInterval := cfg.Overlay.UpdateInterval()
	if frameInterval <= 0 {
		frameInterval = defaultFrameInterval
	}
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received, cleaning up")
			log.Info("pose overlay stopped")
			return nil
		case ev := <-inputs:
			ov.HandleInput(ev)
		case <-ticker.C:
			engine.Step()
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses POSEOVERLAY_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("POSEOVERLAY_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
