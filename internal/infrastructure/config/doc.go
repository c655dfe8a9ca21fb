// Package config loads the daemon's YAML configuration, applies
// POSEOVERLAY_* environment overrides, fills defaults, and validates the
// result. Loading happens once at startup; the returned Config is then
// read-only.
//
// Secrets (MQTT password, InfluxDB token) belong in environment
// variables, not in the file:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
