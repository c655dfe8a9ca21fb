package overlay

import (
	"fmt"
	"sync"

	"github.com/trackworks/poseoverlay/internal/vr"
)

// binding is one named input binding: a keyboard key or a controller button
// mapped to an action. Master bindings stay live when the group is disabled.
type binding struct {
	name      string
	key       string
	button    vr.Button
	hasButton bool
	master    bool
	action    func()
}

// trigger describes the binding's input source for display purposes.
func (b binding) trigger() string {
	if b.hasButton {
		return fmt.Sprintf("button %s", b.button)
	}
	return fmt.Sprintf("key %s", b.key)
}

// BindingInfo is a read-only view of one binding, for the debug API.
type BindingInfo struct {
	Name    string `json:"name"`
	Trigger string `json:"trigger"`
	Master  bool   `json:"master"`
	Enabled bool   `json:"enabled"`
}

// bindingTable groups the overlay's input bindings so they can be muted and
// restored together. Dispatch methods are safe for concurrent use.
type bindingTable struct {
	mu       sync.RWMutex
	bindings []binding
	enabled  bool
}

func newBindingTable() *bindingTable {
	return &bindingTable{enabled: true}
}

func (t *bindingTable) add(b binding) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings = append(t.bindings, b)
}

// setEnabled mutes or unmutes every non-master binding.
func (t *bindingTable) setEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

// keys returns the distinct keyboard keys the table listens on.
func (t *bindingTable) keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[string]bool)
	var keys []string
	for _, b := range t.bindings {
		if b.hasButton || b.key == "" || seen[b.key] {
			continue
		}
		seen[b.key] = true
		keys = append(keys, b.key)
	}
	return keys
}

// dispatchKey runs the action bound to key, if any. It reports whether a
// binding fired.
func (t *bindingTable) dispatchKey(key string) bool {
	return t.dispatch(func(b binding) bool {
		return !b.hasButton && b.key == key
	})
}

// dispatchButton runs the action bound to a controller button, if any.
func (t *bindingTable) dispatchButton(button vr.Button) bool {
	return t.dispatch(func(b binding) bool {
		return b.hasButton && b.button == button
	})
}

// buttonEnabled reports whether a binding for button exists and is currently
// live. Used for bindings whose action needs the input event itself.
func (t *bindingTable) buttonEnabled(button vr.Button) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, b := range t.bindings {
		if b.hasButton && b.button == button {
			return t.enabled || b.master
		}
	}
	return false
}

func (t *bindingTable) dispatch(match func(binding) bool) bool {
	t.mu.RLock()
	var action func()
	for _, b := range t.bindings {
		if !match(b) {
			continue
		}
		if !t.enabled && !b.master {
			break
		}
		action = b.action
		break
	}
	t.mu.RUnlock()

	if action == nil {
		return false
	}
	action()
	return true
}

// snapshot returns a copy of the table for display.
func (t *bindingTable) snapshot() []BindingInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	infos := make([]BindingInfo, 0, len(t.bindings))
	for _, b := range t.bindings {
		infos = append(infos, BindingInfo{
			Name:    b.name,
			Trigger: b.trigger(),
			Master:  b.master,
			Enabled: t.enabled || b.master,
		})
	}
	return infos
}
