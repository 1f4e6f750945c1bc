// Package production provides production integrations for a running
// Interpreter: snapshot persistence, transition event publishing, and DOT
// visualization, generalized from the teacher's package of the same name
// (internal/production/*.go) onto internal/core and internal/elements.
package production

import (
	"context"
	"time"

	"statechartx/internal/core"
)

// TransitionRecord bundles a fired event with the machine it happened in
// and when, generalized from the teacher's PublishedEvent/MachineMetadata
// split (internal/production/eventpublisher.go) into one struct since
// internal/core no longer carries a MachineMetadata type of its own.
type TransitionRecord struct {
	MachineID string
	Event     core.Event
	Timestamp time.Time
}

// ChannelPublisher is a stdlib-only implementation that forwards transition
// records to a Go channel. Publish is non-blocking: it drops on
// backpressure rather than stalling the interpreter's driving goroutine,
// unchanged in approach from the teacher's ChannelPublisher.
type ChannelPublisher struct {
	ch chan<- TransitionRecord
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- TransitionRecord) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, machineID string, event core.Event, ts time.Time) error {
	select {
	case p.ch <- TransitionRecord{MachineID: machineID, Event: event, Timestamp: ts}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // non-blocking drop
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
