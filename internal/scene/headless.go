package scene

import (
	"sync"
	"time"

	"github.com/trackworks/poseoverlay/internal/vr"
)

// NodeKind classifies headless nodes for inspection.
type NodeKind string

// Headless node kinds.
const (
	KindText NodeKind = "text"
	KindAxes NodeKind = "axes"
	KindGrid NodeKind = "grid"
)

// Headless is an in-memory Engine.
//
// Nodes record their visibility, pose and text instead of rendering.
// Frames do not run on their own: the host calls Step() at its chosen
// cadence, which is exactly how a real engine drives its frame callbacks.
// Screenshots are recorded by path. All methods are safe for concurrent
// use.
type Headless struct {
	mu          sync.Mutex
	nodes       []*HeadlessNode
	frameSubs   map[int]func()
	keySubs     map[string]map[int]func()
	nextSub     int
	screenshots []string
}

// NewHeadless creates an empty headless engine.
func NewHeadless() *Headless {
	return &Headless{
		frameSubs: make(map[int]func()),
		keySubs:   make(map[string]map[int]func()),
	}
}

// NewText implements Engine.
func (e *Headless) NewText(text string) Text {
	return e.addNode(KindText, text)
}

// NewAxes implements Engine.
func (e *Headless) NewAxes(scale float64) Node {
	n := e.addNode(KindAxes, "")
	n.scale = scale
	return n
}

// NewGrid implements Engine.
func (e *Headless) NewGrid(size float64) Node {
	n := e.addNode(KindGrid, "")
	n.scale = size
	return n
}

func (e *Headless) addNode(kind NodeKind, text string) *HeadlessNode {
	n := &HeadlessNode{engine: e, kind: kind, text: text, visible: true}
	e.mu.Lock()
	e.nodes = append(e.nodes, n)
	e.mu.Unlock()
	return n
}

// OnFrame implements Engine.
func (e *Headless) OnFrame(fn func()) Subscription {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.frameSubs[id] = fn
	e.mu.Unlock()
	return &headlessSub{cancel: func() {
		e.mu.Lock()
		delete(e.frameSubs, id)
		e.mu.Unlock()
	}}
}

// OnKeyDown implements Engine.
func (e *Headless) OnKeyDown(key string, fn func()) Subscription {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	if e.keySubs[key] == nil {
		e.keySubs[key] = make(map[int]func())
	}
	e.keySubs[key][id] = fn
	e.mu.Unlock()
	return &headlessSub{cancel: func() {
		e.mu.Lock()
		delete(e.keySubs[key], id)
		e.mu.Unlock()
	}}
}

// AfterFunc implements Engine using a wall-clock timer.
func (e *Headless) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// CaptureScreenshot implements Engine by recording the path.
func (e *Headless) CaptureScreenshot(path string) error {
	e.mu.Lock()
	e.screenshots = append(e.screenshots, path)
	e.mu.Unlock()
	return nil
}

// Step runs all registered frame callbacks once. The host calls this at
// its frame cadence.
func (e *Headless) Step() {
	for _, fn := range e.snapshotFrameSubs() {
		fn()
	}
}

// PressKey delivers a key-down edge to all callbacks registered for key.
func (e *Headless) PressKey(key string) {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.keySubs[key]))
	for _, fn := range e.keySubs[key] {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Screenshots returns the paths captured so far.
func (e *Headless) Screenshots() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.screenshots))
	copy(out, e.screenshots)
	return out
}

// Nodes returns all live (non-removed) nodes, for inspection in tests.
func (e *Headless) Nodes() []*HeadlessNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []*HeadlessNode
	for _, n := range e.nodes {
		if !n.removed() {
			out = append(out, n)
		}
	}
	return out
}

// TextNodes returns all live text nodes.
func (e *Headless) TextNodes() []*HeadlessNode {
	var out []*HeadlessNode
	for _, n := range e.Nodes() {
		if n.Kind() == KindText {
			out = append(out, n)
		}
	}
	return out
}

func (e *Headless) snapshotFrameSubs() []func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	fns := make([]func(), 0, len(e.frameSubs))
	for _, fn := range e.frameSubs {
		fns = append(fns, fn)
	}
	return fns
}

// HeadlessNode is a recorded scene node.
type HeadlessNode struct {
	engine *Headless

	mu      sync.Mutex
	kind    NodeKind
	text    string
	scale   float64
	pose    vr.Pose
	visible bool
	gone    bool
}

// SetVisible implements Node.
func (n *HeadlessNode) SetVisible(visible bool) {
	n.mu.Lock()
	n.visible = visible
	n.mu.Unlock()
}

// SetPose implements Node.
func (n *HeadlessNode) SetPose(pose vr.Pose) {
	n.mu.Lock()
	n.pose = pose
	n.mu.Unlock()
}

// SetText implements Text.
func (n *HeadlessNode) SetText(text string) {
	n.mu.Lock()
	n.text = text
	n.mu.Unlock()
}

// Remove implements Node.
func (n *HeadlessNode) Remove() {
	n.mu.Lock()
	n.gone = true
	n.mu.Unlock()
}

// Kind returns the node's primitive kind.
func (n *HeadlessNode) Kind() NodeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.kind
}

// Text returns the current label text.
func (n *HeadlessNode) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// Visible reports the current visibility flag.
func (n *HeadlessNode) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// Pose returns the last pose set on the node.
func (n *HeadlessNode) Pose() vr.Pose {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pose
}

func (n *HeadlessNode) removed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.gone
}

// headlessSub is a cancellable callback registration.
type headlessSub struct {
	once   sync.Once
	cancel func()
}

// Cancel implements Subscription.
func (s *headlessSub) Cancel() {
	s.once.Do(s.cancel)
}
