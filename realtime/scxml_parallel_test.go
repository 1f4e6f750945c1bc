package realtime

import (
	"context"
	"testing"
	"time"

	"statechartx"
	"statechartx/internal/core"
	"statechartx/internal/extensibility"
)

// TestParallelRegionExitOrderThroughTicks exercises a parallel machine driven
// through the tick-batched Runtime instead of direct Send calls, and checks
// that exit actions still run in the reverse-document-order the core
// interpreter guarantees (children before the parallel parent) even though
// events arrive in batches rather than one at a time.
func TestParallelRegionExitOrderThroughTicks(t *testing.T) {
	var order []string

	rc := func(name string) func(*extensibility.Context, core.Event) error {
		return func(*extensibility.Context, core.Event) error {
			order = append(order, name)
			return nil
		}
	}

	b := statechartx.NewMachineBuilder("app", "both")
	b.State("both").Parallel()
	b.State("both.left").Compound("both.left.a").Exit(rc("left-exit"))
	b.State("both.left.a")
	b.State("both.right").Compound("both.right.a").Exit(rc("right-exit"))
	b.State("both.right.a")
	b.State("both").Exit(rc("both-exit"))
	b.State("both").On("go", "done", nil, rc("transition-action"))
	b.State("done")

	ctx := extensibility.NewContext()
	executor := extensibility.NewClosureContentExecutor(ctx)

	m, err := b.BuildWithOptions(core.WithContentExecutor(executor))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	rt := NewRuntime(m, Config{TickRate: 5 * time.Millisecond, MaxEventsPerTick: 10})
	if err := rt.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer rt.Stop()

	if err := rt.SendEvent("go", nil); err != nil {
		t.Fatalf("SendEvent: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if rt.Current() != "done" {
		t.Fatalf("expected done, got %s", rt.Current())
	}

	if len(order) != 4 {
		t.Fatalf("expected 4 recorded actions, got %v", order)
	}
	// left/right region exits happen before the parallel parent's own exit,
	// and the transition's own content runs last.
	if order[2] != "both-exit" || order[3] != "transition-action" {
		t.Fatalf("unexpected exit/action order: %v", order)
	}
}
