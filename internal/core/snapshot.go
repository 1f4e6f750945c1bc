package core

// Snapshot is the serializable state of a running Interpreter: its active
// configuration, recorded history, and any external events that had been
// enqueued but not yet processed. It is what Persister/Registry adapters
// (internal/production) save and load; internal/core itself never persists
// anything automatically (spec.md §12's non-goal).
type Snapshot struct {
	Configuration   []string            `json:"configuration" yaml:"configuration"`
	History         map[string][]string `json:"history" yaml:"history"`
	PendingExternal []PendingEvent      `json:"pendingExternal" yaml:"pendingExternal"`
}

// PendingEvent is the serializable form of Event.
type PendingEvent struct {
	Name string `json:"name" yaml:"name"`
	Data any    `json:"data,omitempty" yaml:"data,omitempty"`
}

// Snapshot captures the interpreter's current state. It takes the same
// mutex as the other read operations, so it is safe to call from any
// goroutine.
func (ip *Interpreter) Snapshot() Snapshot {
	ip.mu.Lock()
	defer ip.mu.Unlock()

	idxs := ip.configuration.Ascending(ip.tree)
	cfg := make([]string, len(idxs))
	for i, idx := range idxs {
		cfg[i] = ip.tree.Node(idx).ID
	}

	pending := make([]PendingEvent, len(ip.externalQueue))
	for i, e := range ip.externalQueue {
		pending[i] = PendingEvent{Name: e.Name, Data: e.Data}
	}

	return Snapshot{
		Configuration:   cfg,
		History:         ip.history.Snapshot(ip.tree),
		PendingExternal: pending,
	}
}

// RestoreSnapshot replaces the interpreter's configuration, history, and
// pending external queue with a previously captured Snapshot. Call it on an
// interpreter that is not running (never started, or stopped). It marks the
// interpreter running, so Send works right away and drains the restored
// pending events, while a later Start returns ErrAlreadyRunning.
func (ip *Interpreter) RestoreSnapshot(snap Snapshot) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()

	cfg := newElemSet()
	for _, id := range snap.Configuration {
		idx, ok := ip.tree.ByID(id)
		if !ok {
			continue
		}
		cfg.Add(idx)
	}
	ip.configuration = cfg
	ip.history.restoreSnapshot(ip.tree, snap.History)

	ip.externalQueue = make([]Event, 0, len(snap.PendingExternal))
	for _, e := range snap.PendingExternal {
		ip.externalQueue = append(ip.externalQueue, NewExternalEvent(e.Name, e.Data))
	}
	ip.running = true
	return nil
}
