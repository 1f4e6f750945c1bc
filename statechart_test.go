package statechartx

import "testing"

func TestNewMachineFlatCycle(t *testing.T) {
	var entries []string
	record := func(name string) any {
		return func() { entries = append(entries, name) }
	}

	m, err := NewMachine(
		&State{ID: "red", Initial: true, OnEntry: record("red"),
			On: []Transition{{Event: "tick", Target: "green"}}},
		&State{ID: "green", OnEntry: record("green"),
			On: []Transition{{Event: "tick", Target: "yellow"}}},
		&State{ID: "yellow", OnEntry: record("yellow"),
			On: []Transition{{Event: "tick", Target: "red"}}},
	)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if m.Current() != "red" {
		t.Fatalf("expected red, got %s", m.Current())
	}

	if err := m.Send("tick", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.Current() != "green" {
		t.Fatalf("expected green, got %s", m.Current())
	}

	if err := m.Send("tick", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := m.Send("tick", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.Current() != "red" {
		t.Fatalf("expected full cycle back to red, got %s", m.Current())
	}

	if len(entries) == 0 || entries[0] != "red" {
		t.Fatalf("expected initial entry into red first, got %v", entries)
	}
}

func TestNewMachineDefaultsToFirstStateWhenNoInitialFlagged(t *testing.T) {
	m, err := NewMachine(
		&State{ID: "a", On: []Transition{{Event: "go", Target: "b"}}},
		&State{ID: "b"},
	)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if m.Current() != "a" {
		t.Fatalf("expected a as default initial, got %s", m.Current())
	}
}

func TestNewMachineRejectsMultipleInitial(t *testing.T) {
	_, err := NewMachine(
		&State{ID: "a", Initial: true},
		&State{ID: "b", Initial: true},
	)
	if err == nil {
		t.Fatal("expected error for multiple initial states")
	}
}

func TestNewMachineRejectsEmpty(t *testing.T) {
	if _, err := NewMachine(); err == nil {
		t.Fatal("expected error for no states")
	}
}

func TestMachineTransitionPureLookup(t *testing.T) {
	m, err := NewMachine(
		&State{ID: "a", Initial: true, On: []Transition{{Event: "go", Target: "b"}}},
		&State{ID: "b"},
	)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	if got := m.Transition("a", "go"); got != "b" {
		t.Errorf("Transition(a, go) = %s, want b", got)
	}
	if got := m.Transition("a", "unknown"); got != "a" {
		t.Errorf("Transition(a, unknown) = %s, want identity a", got)
	}
	if got := m.Transition("nope", "go"); got != "nope" {
		t.Errorf("Transition(nope, go) = %s, want identity nope", got)
	}
}
