package realtime

import "sort"

// EventWithMeta adds sequencing metadata for deterministic ordering.
type EventWithMeta struct {
	Name        string
	Data        any
	SequenceNum uint64
	Priority    int
}

// sortEvents orders a batch deterministically: higher priority first, then
// FIFO by sequence number for ties. Stable sort preserves insertion order.
func sortEvents(events []EventWithMeta) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Priority != events[j].Priority {
			return events[i].Priority > events[j].Priority
		}
		return events[i].SequenceNum < events[j].SequenceNum
	})
}
