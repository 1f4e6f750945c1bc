// Package statechartx is the public façade over internal/core's
// SCXML-style interpreter: a flat convenience Machine (spec.md §4.7) plus
// the fluent MachineBuilder (builder.go) for constructing richer
// hierarchical/parallel/history trees, both thin wrappers over
// internal/core.Interpreter and internal/elements.Tree.
package statechartx

import (
	"errors"

	"github.com/google/uuid"

	"statechartx/internal/core"
	"statechartx/internal/elements"
)

// Machine drives a constructed state tree. It is a thin wrapper over
// internal/core.Interpreter: every method here just forwards, generalized
// from the teacher's statechart.go Machine (which held its own
// states map[StateID]*State and current *State directly) now that tree
// storage and the microstep/macrostep algorithm live in internal/core.
type Machine struct {
	id   string
	ip   *core.Interpreter
	tree *elements.Tree
}

// NewMachineFromTree wraps an already-built elements.Tree (e.g. from
// MachineBuilder, elements.Config, or a direct elements.Builder use) in a
// driveable Machine. Each Machine is stamped with a random id, the way
// asyncmachine-go's machine.go stamps every Machine with uuid.New().String(), so a
// host persisting/publishing many running machines has a correlation id it
// never has to invent itself.
func NewMachineFromTree(tree *elements.Tree, opts ...core.Option) *Machine {
	return &Machine{id: uuid.New().String(), ip: core.NewInterpreter(tree, opts...), tree: tree}
}

// ID returns this Machine's correlation id, for Persister/EventPublisher
// callers that key their records per machine.
func (m *Machine) ID() string                         { return m.id }
func (m *Machine) Start() error                       { return m.ip.Start() }
func (m *Machine) Send(event string, data any) error  { return m.ip.Send(event, data) }
func (m *Machine) SendInternal(event string, data any) { m.ip.SendInternal(event, data) }
func (m *Machine) Stop()                              { m.ip.Stop() }
func (m *Machine) IsRunning() bool                    { return m.ip.IsRunning() }
func (m *Machine) Configuration() []string            { return m.ip.Configuration() }
func (m *Machine) Errors() <-chan error                { return m.ip.Errors() }
func (m *Machine) Snapshot() core.Snapshot             { return m.ip.Snapshot() }
func (m *Machine) RestoreSnapshot(s core.Snapshot) error { return m.ip.RestoreSnapshot(s) }

// Tree exposes the compiled tree backing this machine, for callers (e.g.
// internal/production's Visualizer) that need to inspect structure beyond
// the running configuration.
func (m *Machine) Tree() *elements.Tree { return m.tree }

// Current returns the last id of the active configuration in document
// order (for a configuration without parallel regions, its single active
// leaf), a convenience for callers that only care about one state at a time.
func (m *Machine) Current() string {
	cfg := m.ip.Configuration()
	if len(cfg) == 0 {
		return ""
	}
	return cfg[len(cfg)-1]
}

// Transition implements spec.md §4.7's flat-machine convenience surface
// as a pure lookup: given a state id and event name, return the mapped
// next state id, or state itself when nothing matches. It never touches
// m's own running configuration, matching the "identity semantics when no
// binding exists" degenerate-case wording, but the matching itself is the
// same dotted-prefix, guard-respecting logic Send/selectTransitions use —
// delegating to core.Interpreter.MatchTransition rather than re-implementing
// a second, weaker event matcher here keeps the two surfaces in lockstep.
func (m *Machine) Transition(state, event string) string {
	target, ok := m.ip.MatchTransition(state, event)
	if !ok {
		return state
	}
	return target
}

// Transition is one outbound event->target mapping in the flat
// convenience State shape, generalized from the teacher's Transition
// (statechart.go) which held *State pointers directly.
type Transition struct {
	Event  string
	Target string
}

// State is one node of the flat machine: an id, optional entry/exit
// content, and its outbound transitions — a single-level collapse of
// elements.StateSpec, generalized from the teacher's State/CompoundState
// split (statechart.go) onto the degenerate "compound root, atomic
// children" tree spec.md §4.7 describes.
type State struct {
	ID      string
	Initial bool
	OnEntry elements.ActionRef
	OnExit  elements.ActionRef
	On      []Transition
}

// NewMachine builds the flat degenerate case: a compound root whose
// children are exactly the given atomic states, generalized from the
// teacher's NewMachine(states ...*State) (statechart.go), which built the
// same shape directly instead of through a shared tree/interpreter.
func NewMachine(states ...*State) (*Machine, error) {
	if len(states) == 0 {
		return nil, errors.New("statechartx: no states provided")
	}

	var initial string
	for _, s := range states {
		if s.Initial {
			if initial != "" {
				return nil, errors.New("statechartx: more than one initial state")
			}
			initial = s.ID
		}
	}
	if initial == "" {
		initial = states[0].ID
	}

	b := elements.NewBuilder("machine")
	b.Root().WithInitial(initial)
	for _, s := range states {
		spec := elements.NewState(s.ID, elements.KindAtomic).WithEntry(s.OnEntry).WithExit(s.OnExit)
		for _, t := range s.On {
			spec.AddTransition(elements.NewTransition(t.Event, t.Target))
		}
		b.Root().AddChild(spec)
	}

	tree, err := b.Build()
	if err != nil {
		return nil, err
	}
	return NewMachineFromTree(tree), nil
}
