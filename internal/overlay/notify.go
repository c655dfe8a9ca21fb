package overlay

import (
	"sync"
	"time"

	"github.com/trackworks/poseoverlay/internal/scene"
)

// fadeDuration is how long a notification lingers hidden before its node is
// removed, mirroring the fade-out of the on-screen text.
const fadeDuration = 500 * time.Millisecond

// notifier shows short-lived status messages in the scene.
//
// Only one notification is visible at a time; showing a new message replaces
// the current one and restarts the dismissal timers.
type notifier struct {
	engine   scene.Engine
	duration time.Duration

	mu          sync.Mutex
	node        scene.Text
	hideTimer   scene.Timer
	removeTimer scene.Timer
}

func newNotifier(engine scene.Engine, duration time.Duration) *notifier {
	return &notifier{engine: engine, duration: duration}
}

// show displays msg and schedules its dismissal.
func (n *notifier) show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.dismissLocked()

	node := n.engine.NewText(msg)
	n.node = node
	n.hideTimer = n.engine.AfterFunc(n.duration, func() {
		node.SetVisible(false)
	})
	n.removeTimer = n.engine.AfterFunc(n.duration+fadeDuration, func() {
		node.Remove()
		n.mu.Lock()
		if n.node == node {
			n.node = nil
		}
		n.mu.Unlock()
	})
}

// close cancels any pending notification.
func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dismissLocked()
}

func (n *notifier) dismissLocked() {
	if n.hideTimer != nil {
		n.hideTimer.Stop()
		n.hideTimer = nil
	}
	if n.removeTimer != nil {
		n.removeTimer.Stop()
		n.removeTimer = nil
	}
	if n.node != nil {
		n.node.Remove()
		n.node = nil
	}
}
