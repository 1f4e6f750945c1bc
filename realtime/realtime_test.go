package realtime

import (
	"context"
	"testing"
	"time"

	"statechartx"
)

func singleStateMachine(t *testing.T) *statechartx.Machine {
	t.Helper()
	m, err := statechartx.NewMachine(&statechartx.State{ID: "a", Initial: true})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

func TestRuntimeCreation(t *testing.T) {
	rt := NewRuntime(singleStateMachine(t), Config{TickRate: 10 * time.Millisecond})
	if rt == nil {
		t.Fatal("Runtime is nil")
	}
	if rt.machine == nil {
		t.Fatal("wrapped machine is nil")
	}
}

func TestTickLoopTiming(t *testing.T) {
	rt := NewRuntime(singleStateMachine(t), Config{TickRate: 10 * time.Millisecond})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Failed to start runtime: %v", err)
	}
	defer rt.Stop()

	start := time.Now()
	startTick := rt.GetTickNumber()

	time.Sleep(105 * time.Millisecond) // ~10 ticks

	endTick := rt.GetTickNumber()
	elapsed := time.Since(start)

	tickDiff := endTick - startTick
	if tickDiff < 8 || tickDiff > 12 {
		t.Errorf("Expected ~10 ticks, got %d", tickDiff)
	}

	expectedDuration := 100 * time.Millisecond
	if elapsed < expectedDuration-20*time.Millisecond || elapsed > expectedDuration+20*time.Millisecond {
		t.Errorf("Expected ~%v, got %v", expectedDuration, elapsed)
	}
}

func TestSimpleTransition(t *testing.T) {
	m, err := statechartx.NewMachine(
		&statechartx.State{ID: "a", Initial: true,
			On: []statechartx.Transition{{Event: "event1", Target: "b"}}},
		&statechartx.State{ID: "b"},
	)
	if err != nil {
		t.Fatalf("Failed to create machine: %v", err)
	}

	rt := NewRuntime(m, Config{TickRate: 10 * time.Millisecond})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Failed to start runtime: %v", err)
	}
	defer rt.Stop()

	if rt.Current() != "a" {
		t.Errorf("Expected initial state a, got %s", rt.Current())
	}

	if err := rt.SendEvent("event1", nil); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}

	time.Sleep(15 * time.Millisecond)

	if rt.Current() != "b" {
		t.Errorf("Expected state b after transition, got %s", rt.Current())
	}
}

func TestEventOrderingConcurrentSenders(t *testing.T) {
	rt := NewRuntime(singleStateMachine(t), Config{
		TickRate:         10 * time.Millisecond,
		MaxEventsPerTick: 1000,
	})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Failed to start runtime: %v", err)
	}
	defer rt.Stop()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			for j := 0; j < 10; j++ {
				rt.SendEvent("noop", id*10+j)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	time.Sleep(50 * time.Millisecond)
}

func TestEventBatching(t *testing.T) {
	rt := NewRuntime(singleStateMachine(t), Config{
		TickRate:         10 * time.Millisecond,
		MaxEventsPerTick: 5,
	})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Failed to start runtime: %v", err)
	}
	defer rt.Stop()

	for i := 0; i < 5; i++ {
		if err := rt.SendEvent("noop", i); err != nil {
			t.Errorf("Failed to send event %d: %v", i, err)
		}
	}

	if err := rt.SendEvent("noop", 999); err == nil {
		t.Error("Expected error when queue is full, got nil")
	}

	time.Sleep(15 * time.Millisecond)

	if err := rt.SendEvent("noop", 100); err != nil {
		t.Errorf("Failed to send event after queue cleared: %v", err)
	}
}

func TestEventSorting(t *testing.T) {
	events := []EventWithMeta{
		{Name: "e1", SequenceNum: 3, Priority: 0},
		{Name: "e2", SequenceNum: 1, Priority: 0},
		{Name: "e3", SequenceNum: 2, Priority: 10},
		{Name: "e4", SequenceNum: 4, Priority: 0},
		{Name: "e5", SequenceNum: 5, Priority: 5},
	}

	sortEvents(events)

	expectedOrder := []string{"e3", "e5", "e2", "e1", "e4"}

	for i, event := range events {
		if event.Name != expectedOrder[i] {
			t.Errorf("Event at position %d: expected %s, got %s", i, expectedOrder[i], event.Name)
		}
	}
}
