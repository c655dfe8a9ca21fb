package device

import (
	"sync"

	"github.com/trackworks/poseoverlay/internal/vr"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
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

// Registry holds the session's tracked devices, grouped by class.
//
// It is populated once by Enumerate and fixed afterwards. All public
// methods are thread-safe.
type Registry struct {
	mu           sync.RWMutex
	hmd          *Tracked
	controllers  []*Tracked
	trackers     []*Tracked
	baseStations []*Tracked
	enabled      bool
	logger       Logger
}

// Enumerate queries the runtime for connected devices and builds the
// registry. It must be called exactly once per session, after the VR
// runtime is initialised.
//
// Returns ErrNoHeadset if the runtime reports no headset; absence of any
// other device class is not an error. All devices start with visibility
// off; the overlay applies its configured initial state via SetEnabled.
func Enumerate(rt vr.Runtime) (*Registry, error) {
	if rt == nil {
		return nil, ErrNilRuntime
	}

	hmdSource, ok := rt.Headset()
	if !ok {
		return nil, ErrNoHeadset
	}

	r := &Registry{
		hmd:    newTracked(0, ClassHMD, hmdSource),
		logger: noopLogger{},
	}

	for i, src := range rt.Controllers() {
		r.controllers = append(r.controllers, newTracked(i, ClassController, src))
	}
	for i, src := range rt.Trackers() {
		r.trackers = append(r.trackers, newTracked(i, ClassTracker, src))
	}
	for i, src := range rt.BaseStations() {
		r.baseStations = append(r.baseStations, newTracked(i, ClassBaseStation, src))
	}

	return r, nil
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Headset returns the HMD record.
func (r *Registry) Headset() *Tracked {
	return r.hmd
}

// Controllers returns the controller records in index order.
func (r *Registry) Controllers() []*Tracked {
	return append([]*Tracked(nil), r.controllers...)
}

// Trackers returns the tracker records in index order.
func (r *Registry) Trackers() []*Tracked {
	return append([]*Tracked(nil), r.trackers...)
}

// BaseStations returns the base station records in index order.
func (r *Registry) BaseStations() []*Tracked {
	return append([]*Tracked(nil), r.baseStations...)
}

// Controller returns the controller with the given index.
func (r *Registry) Controller(index int) (*Tracked, bool) {
	if index < 0 || index >= len(r.controllers) {
		return nil, false
	}
	return r.controllers[index], true
}

// All returns every registered device: headset first, then controllers,
// trackers and base stations in index order.
func (r *Registry) All() []*Tracked {
	out := make([]*Tracked, 0, 1+len(r.controllers)+len(r.trackers)+len(r.baseStations))
	out = append(out, r.hmd)
	out = append(out, r.controllers...)
	out = append(out, r.trackers...)
	out = append(out, r.baseStations...)
	return out
}

// SetEnabled sets the group visibility flag and propagates it to every
// device record. Calling it with the current value is a no-op in effect;
// toggling off and back on restores exactly the pre-toggle state.
func (r *Registry) SetEnabled(enabled bool) {
	r.mu.Lock()
	r.enabled = enabled
	r.mu.Unlock()

	for _, d := range r.All() {
		d.setVisible(enabled)
	}

	r.logger.Debug("overlay visibility set", "enabled", enabled)
}

// Enabled reports the current group visibility flag.
func (r *Registry) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// Stats summarises the registry for monitoring and the debug API.
type Stats struct {
	Total   int           `json:"total"`
	ByClass map[Class]int `json:"by_class"`
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	stats := Stats{ByClass: make(map[Class]int)}
	for _, d := range r.All() {
		stats.Total++
		stats.ByClass[d.Class]++
	}
	return stats
}
