package realtime

// processTick drains, sorts, and applies one tick's worth of batched events.
func (rt *Runtime) processTick() {
	events := rt.collectEvents()
	sortEvents(events)
	rt.applyEvents(events)
}

// collectEvents atomically retrieves and clears the event batch.
func (rt *Runtime) collectEvents() []EventWithMeta {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	events := rt.eventBatch
	rt.eventBatch = make([]EventWithMeta, 0, cap(rt.eventBatch))

	return events
}

// applyEvents feeds the batch to the machine in deterministic order. Each
// Send already drives microsteps/macrosteps to a stable configuration, so no
// separate post-batch settling pass is required.
func (rt *Runtime) applyEvents(events []EventWithMeta) {
	for _, e := range events {
		if err := rt.machine.Send(e.Name, e.Data); err != nil {
			select {
			case rt.errCh <- err:
			default:
			}
		}
	}
}
