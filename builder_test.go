package statechartx

import (
	"testing"

	"statechartx/internal/elements"
)

func TestMachineBuilderHierarchical(t *testing.T) {
	b := NewMachineBuilder("app", "menu.browse")
	b.State("menu").Compound("menu.browse")
	b.State("menu.browse").On("settings", "menu.settings", nil, nil)
	b.State("menu.settings")

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cfg := m.Configuration()
	if len(cfg) != 2 || cfg[1] != "menu.browse" {
		t.Fatalf("expected menu/menu.browse, got %v", cfg)
	}

	if err := m.Send("settings", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.Current() != "menu.settings" {
		t.Fatalf("expected menu.settings, got %s", m.Current())
	}
}

func TestMachineBuilderParallelAndHistory(t *testing.T) {
	b := NewMachineBuilder("app", "wizard")
	b.State("wizard").Compound("wizard.step1")
	b.State("wizard.step1").On("next", "wizard.step2", nil, nil)
	b.State("wizard.step2").On("suspend", "suspended", nil, nil)
	b.State("wizard.hist").History(elements.HistoryShallow, "wizard.step1")
	b.State("suspended").On("resume", "wizard.hist", nil, nil)

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Send("next", nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Send("suspend", nil); err != nil {
		t.Fatal(err)
	}
	if m.Current() != "suspended" {
		t.Fatalf("expected suspended, got %s", m.Current())
	}
	if err := m.Send("resume", nil); err != nil {
		t.Fatal(err)
	}
	if m.Current() != "wizard.step2" {
		t.Fatalf("expected history to restore wizard.step2, got %s", m.Current())
	}
}

func TestMachineBuilderParallelRegions(t *testing.T) {
	b := NewMachineBuilder("app", "both")
	b.State("both").Parallel()
	b.State("both.left").Compound("both.left.a")
	b.State("both.left.a").On("next", "both.left.b", nil, nil)
	b.State("both.left.b")
	b.State("both.right").Compound("both.right.a")
	b.State("both.right.a").On("next", "both.right.b", nil, nil)
	b.State("both.right.b")

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Send("next", nil); err != nil {
		t.Fatal(err)
	}
	cfg := m.Configuration()
	found := map[string]bool{}
	for _, id := range cfg {
		found[id] = true
	}
	if !found["both.left.b"] || !found["both.right.b"] {
		t.Fatalf("expected both regions advanced, got %v", cfg)
	}
}

func TestMachineBuilderRejectsUnresolvedTarget(t *testing.T) {
	b := NewMachineBuilder("app", "a")
	b.State("a").On("go", "nowhere", nil, nil)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected unresolved target error")
	}
}
