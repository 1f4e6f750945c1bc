package statechartx

import (
	"strings"

	"statechartx/internal/core"
	"statechartx/internal/elements"
)

// MachineBuilder provides a fluent API for constructing state machines
// using dot-hierarchical string names instead of manually assembling an
// elements.StateSpec tree, generalized from the teacher's MachineBuilder
// (builder.go), which did the equivalent over StateID-keyed maps. Every
// resolved state id is its full dotted path, matching the teacher's
// naming convention.
type MachineBuilder struct {
	root  *elements.StateSpec
	specs map[string]*elements.StateSpec
}

// StateBuilder provides fluent methods for configuring one state.
type StateBuilder struct {
	b    *MachineBuilder
	spec *elements.StateSpec
}

// NewMachineBuilder creates a builder for a machine whose root carries
// rootName and whose default-entry child is initialStateName.
func NewMachineBuilder(rootName, initialStateName string) *MachineBuilder {
	root := elements.NewState(rootName, elements.KindRoot).WithInitial(initialStateName)
	return &MachineBuilder{
		root:  root,
		specs: map[string]*elements.StateSpec{rootName: root},
	}
}

// State creates or retrieves a state by name. Supports dot notation for
// hierarchical states (e.g. "parent.child"); an absent parent is
// auto-created as a compound state, recursively up to the root.
func (b *MachineBuilder) State(name string) *StateBuilder {
	return &StateBuilder{b: b, spec: b.getOrCreate(name)}
}

// Build compiles the configured tree and returns a driveable Machine.
func (b *MachineBuilder) Build() (*Machine, error) {
	tree, err := elements.BuildTree(b.root)
	if err != nil {
		return nil, err
	}
	return NewMachineFromTree(tree), nil
}

// BuildWithOptions is Build but forwards core.Option values (guard
// evaluator, content executor, ...) to the constructed Machine's
// Interpreter.
func (b *MachineBuilder) BuildWithOptions(opts ...core.Option) (*Machine, error) {
	tree, err := elements.BuildTree(b.root)
	if err != nil {
		return nil, err
	}
	return NewMachineFromTree(tree, opts...), nil
}

func (b *MachineBuilder) getOrCreate(name string) *elements.StateSpec {
	if spec, ok := b.specs[name]; ok {
		return spec
	}

	parentPath, _ := splitPath(name)
	parent := b.root
	if parentPath != "" {
		parent = b.getOrCreate(parentPath)
		if parent.Kind == elements.KindAtomic {
			parent.Kind = elements.KindCompound
		}
	}

	spec := elements.NewState(name, elements.KindAtomic)
	b.specs[name] = spec
	parent.AddChild(spec)
	return spec
}

// splitPath splits a hierarchical path into parent and leaf components.
// For "parent.child" it returns ("parent", "child"); for "child" it
// returns ("", "child").
func splitPath(path string) (parent, name string) {
	idx := strings.LastIndex(path, ".")
	if idx == -1 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// StateBuilder fluent methods.

// Atomic marks this state as atomic (no children). This is the default
// for states without a Compound/Parallel/Final/History call.
func (sb *StateBuilder) Atomic() *StateBuilder {
	sb.spec.Kind = elements.KindAtomic
	return sb
}

// Compound marks this state as compound with the given default-entry
// child name.
func (sb *StateBuilder) Compound(initialStateName string) *StateBuilder {
	sb.spec.Kind = elements.KindCompound
	sb.spec.Initial = initialStateName
	return sb
}

// Parallel marks this state as parallel: every child region is active
// concurrently while it is entered.
func (sb *StateBuilder) Parallel() *StateBuilder {
	sb.spec.Kind = elements.KindParallel
	return sb
}

// Final marks this state as a final state. content runs on entry, same
// as OnEntry elsewhere, and is where a host raises/records "done data".
func (sb *StateBuilder) Final(content elements.ActionRef) *StateBuilder {
	sb.spec.Kind = elements.KindFinal
	sb.spec.OnEntry = content
	return sb
}

// History marks this state as a history pseudo-state of the given depth,
// entered by default to defaultStateName when no value has been recorded
// yet.
func (sb *StateBuilder) History(ht elements.HistoryType, defaultStateName string) *StateBuilder {
	sb.spec.Kind = elements.KindHistory
	sb.spec.HistoryType = ht
	sb.spec.HistoryDefaultTargets = []string{defaultStateName}
	return sb
}

// Entry sets the entry content for this state.
func (sb *StateBuilder) Entry(content elements.ActionRef) *StateBuilder {
	sb.spec.OnEntry = content
	return sb
}

// Exit sets the exit content for this state.
func (sb *StateBuilder) Exit(content elements.ActionRef) *StateBuilder {
	sb.spec.OnExit = content
	return sb
}

// On adds a transition from this state to targetName when eventName
// fires, with an optional guard and transition content.
func (sb *StateBuilder) On(eventName, targetName string, guard elements.GuardRef, content elements.ActionRef) *StateBuilder {
	sb.spec.AddTransition(elements.NewTransition(eventName, targetName).WithGuard(guard).WithContent(content))
	return sb
}

// OnInternal adds a targetless internal transition: content runs but no
// state is exited or entered.
func (sb *StateBuilder) OnInternal(eventName string, guard elements.GuardRef, content elements.ActionRef) *StateBuilder {
	sb.spec.AddTransition(elements.NewTransition(eventName).WithGuard(guard).WithContent(content).AsInternal())
	return sb
}
