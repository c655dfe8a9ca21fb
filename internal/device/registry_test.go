package device

import (
	"errors"
	"testing"

	"github.com/trackworks/poseoverlay/internal/vr"
)

// stubDevice is a fixed-pose vr.Device for tests.
type stubDevice struct {
	pos   vr.Vec3
	euler vr.Euler
}

func (d *stubDevice) Position() vr.Vec3     { return d.pos }
func (d *stubDevice) Orientation() vr.Euler { return d.euler }

// stubRuntime is a canned vr.Runtime for tests.
type stubRuntime struct {
	hmd          vr.Device
	controllers  []vr.Device
	trackers     []vr.Device
	baseStations []vr.Device
}

func (r *stubRuntime) Headset() (vr.Device, bool) { return r.hmd, r.hmd != nil }
func (r *stubRuntime) Controllers() []vr.Device   { return r.controllers }
func (r *stubRuntime) Trackers() []vr.Device      { return r.trackers }
func (r *stubRuntime) BaseStations() []vr.Device  { return r.baseStations }

func testRuntime(controllers, trackers, stations int) *stubRuntime {
	rt := &stubRuntime{hmd: &stubDevice{pos: vr.Vec3{Y: 1.7}}}
	for i := 0; i < controllers; i++ {
		rt.controllers = append(rt.controllers, &stubDevice{pos: vr.Vec3{X: float64(i)}})
	}
	for i := 0; i < trackers; i++ {
		rt.trackers = append(rt.trackers, &stubDevice{})
	}
	for i := 0; i < stations; i++ {
		rt.baseStations = append(rt.baseStations, &stubDevice{})
	}
	return rt
}

func TestEnumerate_TypicalSetup(t *testing.T) {
	// 1 headset, 2 controllers, 0 trackers, 0 base stations.
	r, err := Enumerate(testRuntime(2, 0, 0))
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	if r.Headset() == nil {
		t.Fatal("Headset() = nil")
	}
	if got := len(r.Controllers()); got != 2 {
		t.Errorf("len(Controllers()) = %d, want 2", got)
	}
	if got := len(r.Trackers()); got != 0 {
		t.Errorf("len(Trackers()) = %d, want 0", got)
	}
	if got := len(r.BaseStations()); got != 0 {
		t.Errorf("len(BaseStations()) = %d, want 0", got)
	}
}

func TestEnumerate_NoHeadsetFails(t *testing.T) {
	rt := testRuntime(2, 1, 2)
	rt.hmd = nil

	_, err := Enumerate(rt)
	if !errors.Is(err, ErrNoHeadset) {
		t.Fatalf("Enumerate without headset: err = %v, want ErrNoHeadset", err)
	}
}

func TestEnumerate_NilRuntime(t *testing.T) {
	_, err := Enumerate(nil)
	if !errors.Is(err, ErrNilRuntime) {
		t.Fatalf("Enumerate(nil): err = %v, want ErrNilRuntime", err)
	}
}

func TestEnumerate_IndicesFollowDiscoveryOrder(t *testing.T) {
	r, err := Enumerate(testRuntime(3, 2, 1))
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	for i, c := range r.Controllers() {
		if c.Index != i {
			t.Errorf("controller %d has Index %d", i, c.Index)
		}
		if c.Class != ClassController {
			t.Errorf("controller %d has Class %q", i, c.Class)
		}
	}
	// Trackers are numbered independently of controllers.
	for i, tr := range r.Trackers() {
		if tr.Index != i {
			t.Errorf("tracker %d has Index %d", i, tr.Index)
		}
	}
}

func TestRegistry_Controller(t *testing.T) {
	r, _ := Enumerate(testRuntime(2, 0, 0))

	c, ok := r.Controller(1)
	if !ok || c.Index != 1 {
		t.Errorf("Controller(1) = %+v, %v", c, ok)
	}
	if _, ok := r.Controller(2); ok {
		t.Error("Controller(2) should not exist")
	}
	if _, ok := r.Controller(-1); ok {
		t.Error("Controller(-1) should not exist")
	}
}

func TestRegistry_SetEnabledTogglesAll(t *testing.T) {
	r, _ := Enumerate(testRuntime(2, 1, 2))

	r.SetEnabled(true)
	for _, d := range r.All() {
		if !d.Visible() {
			t.Errorf("%s not visible after SetEnabled(true)", d.ID())
		}
	}

	r.SetEnabled(false)
	r.SetEnabled(true) // toggle off then on restores prior state
	for _, d := range r.All() {
		if !d.Visible() {
			t.Errorf("%s not visible after off/on cycle", d.ID())
		}
	}
	if !r.Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}

	// Same value twice is a no-op, not an error.
	r.SetEnabled(true)
	if !r.Enabled() {
		t.Error("Enabled() changed on idempotent call")
	}
}

func TestRegistry_GetStats(t *testing.T) {
	r, _ := Enumerate(testRuntime(2, 1, 2))

	stats := r.GetStats()
	if stats.Total != 6 {
		t.Errorf("Total = %d, want 6", stats.Total)
	}
	want := map[Class]int{ClassHMD: 1, ClassController: 2, ClassTracker: 1, ClassBaseStation: 2}
	for class, n := range want {
		if stats.ByClass[class] != n {
			t.Errorf("ByClass[%s] = %d, want %d", class, stats.ByClass[class], n)
		}
	}
}

func TestTracked_PoseReadsThrough(t *testing.T) {
	src := &stubDevice{pos: vr.Vec3{X: 1}, euler: vr.Euler{Yaw: 90}}
	rt := &stubRuntime{hmd: src}
	r, _ := Enumerate(rt)

	if got := r.Headset().Pose().Position.X; got != 1 {
		t.Errorf("Pose().Position.X = %v, want 1", got)
	}

	// Pose is live: moving the source moves the next read.
	src.pos.X = 2
	if got := r.Headset().Pose().Position.X; got != 2 {
		t.Errorf("Pose().Position.X after move = %v, want 2", got)
	}
}

func TestTracked_ID(t *testing.T) {
	r, _ := Enumerate(testRuntime(2, 0, 0))
	if got := r.Controllers()[1].ID(); got != "controller-1" {
		t.Errorf("ID() = %q, want %q", got, "controller-1")
	}
	if got := r.Headset().ID(); got != "hmd-0" {
		t.Errorf("ID() = %q, want %q", got, "hmd-0")
	}
}
