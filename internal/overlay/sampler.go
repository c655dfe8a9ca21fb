package overlay

import (
	"fmt"
	"strings"

	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/vr"
)

// Update samples every device's live pose and refreshes the overlay display.
//
// It runs once per rendered frame but throttles actual work to the
// configured minimum interval; frames arriving sooner are skipped, as is all
// work while the overlay is disabled. Every Nth completed update (the
// telemetry divisor) additionally fans the sampled poses out to the sinks.
func (o *Overlay) Update() {
	if !o.registry.Enabled() {
		return
	}

	o.mu.Lock()
	now := o.now()
	if interval := o.cfg.UpdateInterval(); interval > 0 {
		if !o.lastUpdate.IsZero() && now.Sub(o.lastUpdate) < interval {
			o.mu.Unlock()
			return
		}
	}
	o.lastUpdate = now
	o.updateCount++
	publish := o.cfg.TelemetryDivisor > 0 && o.updateCount%uint64(o.cfg.TelemetryDivisor) == 0
	panel := o.panel
	o.mu.Unlock()

	var b strings.Builder
	b.WriteString(helpText())
	b.WriteString("\n")

	type sample struct {
		dev  *device.Tracked
		pose vr.Pose
	}
	var samples []sample

	// HMD, controllers, and trackers get both renderings: the compact
	// summary and the per-axis value lines.
	if hmd := o.registry.Headset(); hmd != nil {
		pose := hmd.Pose()
		samples = append(samples, sample{hmd, pose})
		fmt.Fprintf(&b, "%s: %s\n", hmd.ID(), formatSummary(pose))
		writeAxisLines(&b, pose)
	}
	for _, group := range [][]*device.Tracked{
		o.registry.Controllers(),
		o.registry.Trackers(),
	} {
		for _, dev := range group {
			pose := dev.Pose()
			samples = append(samples, sample{dev, pose})
			fmt.Fprintf(&b, "%s: %s\n", dev.ID(), formatSummary(pose))
			writeAxisLines(&b, pose)
		}
	}

	// Base stations are fixed infrastructure; the summary is enough.
	for _, dev := range o.registry.BaseStations() {
		pose := dev.Pose()
		samples = append(samples, sample{dev, pose})
		fmt.Fprintf(&b, "%s: %s\n", dev.ID(), formatSummary(pose))
	}

	if panel != nil {
		panel.SetText(b.String())
	}

	o.mu.Lock()
	for _, s := range samples {
		if axes, ok := o.deviceAxes[s.dev.ID()]; ok {
			axes.SetPose(s.pose)
		}
	}
	o.mu.Unlock()

	if publish {
		for _, sink := range o.sinks {
			for _, s := range samples {
				sink.PublishPose(s.dev, s.pose)
			}
		}
	}
}

// formatSummary renders a pose as "(x,y,z) / (pitch,yaw,roll)" with the
// positions at two decimals and the angles at one.
func formatSummary(p vr.Pose) string {
	return fmt.Sprintf("(%.2f,%.2f,%.2f) / (%.1f,%.1f,%.1f)",
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Orientation.Pitch, p.Orientation.Yaw, p.Orientation.Roll)
}

// writeAxisLines renders a pose as one line per axis, pairing each position
// component with the rotation about it: X with pitch, Y with yaw, Z with
// roll.
func writeAxisLines(b *strings.Builder, p vr.Pose) {
	fmt.Fprintf(b, "X: %.2f (%.1f°)\n", p.Position.X, p.Orientation.Pitch)
	fmt.Fprintf(b, "Y: %.2f (%.1f°)\n", p.Position.Y, p.Orientation.Yaw)
	fmt.Fprintf(b, "Z: %.2f (%.1f°)\n", p.Position.Z, p.Orientation.Roll)
}
