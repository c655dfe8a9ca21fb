package overlay

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/infrastructure/config"
	"github.com/trackworks/poseoverlay/internal/scene"
	"github.com/trackworks/poseoverlay/internal/vr"
)

// Logger is the minimal logging interface the overlay needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

const (
	// toggleKey is the master hotkey that flips the whole overlay on and
	// off. It stays live while the rest of the bindings are muted.
	toggleKey = "f12"

	saveKey  = "s"
	clearKey = "c"

	deviceAxesScale  = 0.5
	captureAxesScale = 0.05
	floorGridSize    = 100.0
)

// Deps carries the overlay's collaborators.
type Deps struct {
	// Config holds the overlay tunables (refresh interval, save path,
	// screenshot directory, notification duration, telemetry divisor).
	Config config.OverlayConfig

	// Engine is the presentation engine the overlay draws into. Required.
	Engine scene.Engine

	// Runtime is the tracked-device runtime to enumerate. Required.
	Runtime vr.Runtime

	// Store accumulates captured points. Required.
	Store *capture.Store

	// Archive persists saved point sets as sessions. Optional; when nil,
	// saves only write the TSV file.
	Archive capture.Repository

	// Sinks receive pose samples and capture events. Optional.
	Sinks []PoseSink

	// Logger receives overlay lifecycle and action logs. Optional.
	Logger Logger
}

// Overlay is the pose debugging overlay.
//
// It owns the device registry, the scene nodes visualising device poses, the
// capture store's markers, the input binding table, and the notification
// area. Update runs on the engine's frame callback; discrete actions run on
// the engine's input callbacks. Public methods are safe to call from other
// goroutines (the debug API reads device and point state while frames run).
type Overlay struct {
	cfg     config.OverlayConfig
	engine  scene.Engine
	store   *capture.Store
	archive capture.Repository
	sinks   []PoseSink
	logger  Logger

	registry *device.Registry
	bindings *bindingTable
	notifier *notifier

	mu         sync.Mutex
	started    bool
	ctx        context.Context
	subs       []scene.Subscription
	grid       scene.Node
	panel      scene.Text
	deviceAxes map[string]scene.Node
	markers    []scene.Node

	screenshotSeq int

	// lastUpdate and updateCount belong to the frame path; they are only
	// touched under mu by Update.
	lastUpdate  time.Time
	updateCount uint64
	now         func() time.Time
}

// New enumerates the runtime's devices and builds the overlay's scene nodes.
//
// The returned overlay is idle until Start registers its frame and input
// callbacks. Scene nodes start in the visibility state given by
// deps.Config.Enabled.
//
// Parameters:
//   - deps: collaborator bundle; Engine, Runtime and Store are required
//
// Returns:
//   - *Overlay: the assembled overlay
//   - error: ErrNilEngine, ErrNilStore, or a device enumeration failure
//     (a runtime without a headset is fatal)
func New(deps Deps) (*Overlay, error) {
	if deps.Engine == nil {
		return nil, ErrNilEngine
	}
	if deps.Store == nil {
		return nil, ErrNilStore
	}
	if deps.Logger == nil {
		deps.Logger = noopLogger{}
	}

	registry, err := device.Enumerate(deps.Runtime)
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	registry.SetLogger(deps.Logger)

	o := &Overlay{
		cfg:      deps.Config,
		engine:   deps.Engine,
		store:    deps.Store,
		archive:  deps.Archive,
		sinks:    deps.Sinks,
		logger:   deps.Logger,
		registry: registry,
		notifier: newNotifier(deps.Engine, deps.Config.NotificationDuration()),

		deviceAxes:    make(map[string]scene.Node),
		screenshotSeq: 1,
		now:           time.Now,
	}

	o.grid = deps.Engine.NewGrid(floorGridSize)
	o.panel = deps.Engine.NewText(helpText())
	for _, dev := range registry.All() {
		o.deviceAxes[dev.ID()] = deps.Engine.NewAxes(deviceAxesScale)
	}

	o.bindings = newBindingTable()
	o.bindings.add(binding{name: "toggle overlay", key: toggleKey, master: true, action: o.Toggle})
	o.bindings.add(binding{name: "save points", key: saveKey, action: o.savePoints})
	o.bindings.add(binding{name: "clear points", key: clearKey, action: o.clearPoints})
	o.bindings.add(binding{name: "place point", button: vr.ButtonTrigger, hasButton: true, action: nil})
	o.bindings.add(binding{name: "save points", button: vr.ButtonA, hasButton: true, action: o.savePoints})
	o.bindings.add(binding{name: "take screenshot", button: vr.ButtonB, hasButton: true, action: o.saveScreenshot})

	o.applyEnabled(deps.Config.Enabled)

	stats := registry.GetStats()
	deps.Logger.Info("overlay assembled",
		"devices", stats.Total,
		"controllers", stats.ByClass[device.ClassController],
		"trackers", stats.ByClass[device.ClassTracker],
		"enabled", deps.Config.Enabled)

	return o, nil
}

// Start registers the overlay's frame and keyboard callbacks with the
// engine. The context bounds archive writes triggered by save actions.
func (o *Overlay) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started {
		return ErrAlreadyStarted
	}
	o.started = true
	o.ctx = ctx

	o.subs = append(o.subs, o.engine.OnFrame(o.Update))
	for _, key := range o.bindings.keys() {
		k := key
		o.subs = append(o.subs, o.engine.OnKeyDown(k, func() {
			o.bindings.dispatchKey(k)
		}))
	}

	o.logger.Info("overlay started", "update_interval", o.cfg.UpdateInterval())
	return nil
}

// Close cancels the overlay's engine callbacks and removes its nodes.
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, sub := range o.subs {
		sub.Cancel()
	}
	o.subs = nil

	o.notifier.close()

	if o.grid != nil {
		o.grid.Remove()
		o.grid = nil
	}
	if o.panel != nil {
		o.panel.Remove()
		o.panel = nil
	}
	for id, axes := range o.deviceAxes {
		axes.Remove()
		delete(o.deviceAxes, id)
	}
	for _, m := range o.markers {
		m.Remove()
	}
	o.markers = nil
	o.started = false

	o.logger.Info("overlay closed")
}

// HandleInput dispatches a controller input event through the binding table.
//
// The trigger binding captures a point from the controller that raised the
// event; other button bindings run their fixed actions.
func (o *Overlay) HandleInput(ev vr.InputEvent) {
	if ev.Button == vr.ButtonTrigger {
		// Mute and unknown-controller cases are logged inside.
		_, _ = o.CapturePoint(ev.Controller)
		return
	}
	o.bindings.dispatchButton(ev.Button)
}

// Toggle flips the overlay's enabled state.
func (o *Overlay) Toggle() {
	o.SetEnabled(!o.registry.Enabled())
}

// SetEnabled shows or hides the whole overlay.
//
// Disabling hides every scene node, marks all devices invisible, and mutes
// all bindings except the master toggle hotkey. Enabling reverses all of it.
func (o *Overlay) SetEnabled(enabled bool) {
	o.mu.Lock()
	o.applyEnabled(enabled)
	o.mu.Unlock()

	for _, sink := range o.sinks {
		sink.PublishEnabled(enabled)
	}
	o.logger.Info("overlay enabled state changed", "enabled", enabled)
}

// applyEnabled does the node and binding work of SetEnabled. Callers other
// than New hold o.mu.
func (o *Overlay) applyEnabled(enabled bool) {
	o.registry.SetEnabled(enabled)
	o.bindings.setEnabled(enabled)

	if o.grid != nil {
		o.grid.SetVisible(enabled)
	}
	if o.panel != nil {
		o.panel.SetVisible(enabled)
	}
	for _, axes := range o.deviceAxes {
		axes.SetVisible(enabled)
	}
	for _, m := range o.markers {
		m.SetVisible(enabled)
	}
}

// Enabled reports whether the overlay is currently shown.
func (o *Overlay) Enabled() bool {
	return o.registry.Enabled()
}

// Registry exposes the device registry for the debug API.
func (o *Overlay) Registry() *device.Registry {
	return o.registry
}

// Bindings returns a snapshot of the binding table for the debug API.
func (o *Overlay) Bindings() []BindingInfo {
	return o.bindings.snapshot()
}

// helpText builds the static header of the overlay panel.
func helpText() string {
	var b strings.Builder
	b.WriteString("F12 - toggle overlay\n")
	b.WriteString("S - save points, C - clear points\n")
	b.WriteString("Controller Buttons:\n")
	b.WriteString("Trigger - place point axes\n")
	b.WriteString("A - Save point data\n")
	b.WriteString("B - Take screenshot\n")
	return b.String()
}
