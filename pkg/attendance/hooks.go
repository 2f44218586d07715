package attendance

import "sync"

// Hook function types for reconciler events
type (
	// StateChangeHook is called when the session state changes
	StateChangeHook func(old, new State)

	// EntryUpdatedHook is called when an entry changes through an edit or a save
	EntryUpdatedHook func(old, new Entry)
)

// hooks manages event callbacks for a reconciler
type hooks struct {
	mu             sync.RWMutex
	onStateChange  []StateChangeHook
	onEntryUpdated []EntryUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnStateChange registers a callback for state transitions
func (h *hooks) OnStateChange(fn StateChangeHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStateChange = append(h.onStateChange, fn)
}

// OnEntryUpdated registers a callback for entry updates
func (h *hooks) OnEntryUpdated(fn EntryUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEntryUpdated = append(h.onEntryUpdated, fn)
}

// Callbacks run without the lock held, so a hook may register further hooks
// or call back into the reconciler.
func (h *hooks) triggerStateChange(old, new State) {
	if old == new {
		return
	}
	h.mu.RLock()
	callbacks := append([]StateChangeHook(nil), h.onStateChange...)
	h.mu.RUnlock()
	for _, hook := range callbacks {
		hook(old, new)
	}
}

func (h *hooks) triggerEntryUpdates(updates []entryUpdate) {
	h.mu.RLock()
	callbacks := append([]EntryUpdatedHook(nil), h.onEntryUpdated...)
	h.mu.RUnlock()
	for _, u := range updates {
		for _, hook := range callbacks {
			hook(u.before, u.after)
		}
	}
}
