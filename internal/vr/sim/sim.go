// Package sim provides a deterministic simulated VR runtime.
//
// It lets the overlay daemon run without SteamVR hardware: each simulated
// device follows a smooth parametric path (circular sweep plus a slow
// vertical bob) derived from a seed and the elapsed session time, so two
// runs with the same seed and clock produce identical poses.
package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/trackworks/poseoverlay/internal/vr"
)

var (
	_ vr.Runtime     = (*Runtime)(nil)
	_ vr.InputSource = (*Runtime)(nil)
)

// Config controls the simulated device population.
type Config struct {
	// Headset controls whether an HMD is present. Disabling it simulates
	// the fatal no-headset startup condition.
	Headset bool `yaml:"headset"`

	// Controllers is the number of simulated controllers.
	Controllers int `yaml:"controllers"`

	// Trackers is the number of simulated generic trackers.
	Trackers int `yaml:"trackers"`

	// BaseStations is the number of simulated base stations. Base
	// stations are stationary.
	BaseStations int `yaml:"base_stations"`

	// Seed makes device paths reproducible. Zero is a valid seed.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns a typical room-scale setup: one headset, two
// controllers, no trackers, two base stations.
func DefaultConfig() Config {
	return Config{
		Headset:      true,
		Controllers:  2,
		BaseStations: 2,
	}
}

// inputBuffer bounds the synthesized button-edge queue. Edges beyond the
// buffer are dropped rather than blocking the caller.
const inputBuffer = 16

// Runtime is a simulated vr.Runtime. It also implements vr.InputSource:
// button edges are synthesized with PressButton and delivered on Events.
type Runtime struct {
	hmd          *pathDevice
	controllers  []vr.Device
	trackers     []vr.Device
	baseStations []vr.Device

	events chan vr.InputEvent

	start time.Time
	now   func() time.Time
}

// New creates a simulated runtime from cfg. Device paths are fixed at
// construction; poses then depend only on elapsed time.
func New(cfg Config) *Runtime {
	rt := &Runtime{
		events: make(chan vr.InputEvent, inputBuffer),
		start:  time.Now(),
		now:    time.Now,
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // Simulation, not cryptography

	if cfg.Headset {
		rt.hmd = rt.newPath(rng, 0.3, 1.7)
	}
	for i := 0; i < cfg.Controllers; i++ {
		rt.controllers = append(rt.controllers, rt.newPath(rng, 0.6, 1.2))
	}
	for i := 0; i < cfg.Trackers; i++ {
		rt.trackers = append(rt.trackers, rt.newPath(rng, 0.8, 0.4))
	}
	for i := 0; i < cfg.BaseStations; i++ {
		// Base stations sit high in opposite room corners.
		angle := float64(i)*math.Pi + math.Pi/4
		rt.baseStations = append(rt.baseStations, &fixedDevice{
			pos:   vr.Vec3{X: 2.5 * math.Cos(angle), Y: 2.2, Z: 2.5 * math.Sin(angle)},
			euler: vr.Euler{Pitch: -30, Yaw: angle*180/math.Pi + 180},
		})
	}

	return rt
}

// SetClock replaces the time source. Intended for tests that need
// reproducible elapsed time.
func (rt *Runtime) SetClock(start time.Time, now func() time.Time) {
	rt.start = start
	rt.now = now
}

// Headset implements vr.Runtime.
func (rt *Runtime) Headset() (vr.Device, bool) {
	if rt.hmd == nil {
		return nil, false
	}
	return rt.hmd, true
}

// Controllers implements vr.Runtime.
func (rt *Runtime) Controllers() []vr.Device { return rt.controllers }

// Trackers implements vr.Runtime.
func (rt *Runtime) Trackers() []vr.Device { return rt.trackers }

// BaseStations implements vr.Runtime.
func (rt *Runtime) BaseStations() []vr.Device { return rt.baseStations }

// PressButton synthesizes a button-down edge on the given controller and
// reports whether it was queued. The edge is dropped when the buffer is
// full (a stalled consumer must not back-pressure the simulation).
func (rt *Runtime) PressButton(controller int, b vr.Button) bool {
	select {
	case rt.events <- vr.InputEvent{Controller: controller, Button: b}:
		return true
	default:
		return false
	}
}

// Events implements vr.InputSource.
func (rt *Runtime) Events() <-chan vr.InputEvent { return rt.events }

// newPath creates a moving device: a circular sweep of the given radius
// around a random room offset, at roughly the given height, with a slow
// vertical bob. Angular rates and phases come from the seeded generator.
func (rt *Runtime) newPath(rng *rand.Rand, radius, height float64) *pathDevice {
	return &pathDevice{
		rt:      rt,
		centreX: (rng.Float64() - 0.5) * 2.0,
		centreZ: (rng.Float64() - 0.5) * 2.0,
		radius:  radius,
		height:  height,
		rate:    0.2 + rng.Float64()*0.4, // rad/s
		bobRate: 0.5 + rng.Float64()*0.5,
		bobAmp:  0.05 + rng.Float64()*0.1,
		phase:   rng.Float64() * 2 * math.Pi,
	}
}

// pathDevice is a simulated moving device.
type pathDevice struct {
	rt      *Runtime
	centreX float64
	centreZ float64
	radius  float64
	height  float64
	rate    float64
	bobRate float64
	bobAmp  float64
	phase   float64
}

func (d *pathDevice) elapsed() float64 {
	return d.rt.now().Sub(d.rt.start).Seconds()
}

// Position implements vr.Device.
func (d *pathDevice) Position() vr.Vec3 {
	t := d.elapsed()
	a := d.phase + d.rate*t
	return vr.Vec3{
		X: d.centreX + d.radius*math.Cos(a),
		Y: d.height + d.bobAmp*math.Sin(d.phase+d.bobRate*t),
		Z: d.centreZ + d.radius*math.Sin(a),
	}
}

// Orientation implements vr.Device.
func (d *pathDevice) Orientation() vr.Euler {
	t := d.elapsed()
	a := d.phase + d.rate*t
	return vr.Euler{
		Pitch: 10 * math.Sin(d.phase+d.bobRate*t),
		// Face along the direction of travel.
		Yaw:  math.Mod(a*180/math.Pi+90, 360),
		Roll: 5 * math.Cos(d.phase+d.bobRate*t),
	}
}

// fixedDevice is a stationary device (base station).
type fixedDevice struct {
	pos   vr.Vec3
	euler vr.Euler
}

func (d *fixedDevice) Position() vr.Vec3     { return d.pos }
func (d *fixedDevice) Orientation() vr.Euler { return d.euler }
