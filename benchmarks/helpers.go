// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"statechartx/internal/core"
	"statechartx/internal/elements"
)

// GenFlatTree builds a flat machine with n atomic states cycling via "tick"
// events: s0 -> s1 -> ... -> s(n-1) -> s0.
func GenFlatTree(n int) *elements.Tree {
	if n < 1 {
		n = 1
	}
	b := elements.NewBuilder(fmt.Sprintf("flat_%d", n))
	b.Root().WithInitial("s0")
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("s%d", i)
		target := fmt.Sprintf("s%d", (i+1)%n)
		spec := elements.NewState(id, elements.KindAtomic).
			AddTransition(elements.NewTransition("tick", target))
		b.Root().AddChild(spec)
	}
	tree, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tree
}

// GenDeepTree builds a chain of depth nested compounds, each holding its
// own two-leaf toggle (c<i>_leaf1/c<i>_leaf2) reacting to "tick". Each
// compound's initial child is its first leaf, so only c0 and c0_leaf1 are
// active after Start, and each "tick" toggles c0's two leaves.
func GenDeepTree(depth int) *elements.Tree {
	if depth < 1 {
		depth = 1
	}
	b := elements.NewBuilder(fmt.Sprintf("deep_%d", depth))
	b.Root().WithInitial("c0")

	var innermost *elements.StateSpec
	var top *elements.StateSpec
	for i := 0; i < depth; i++ {
		leaf1ID, leaf2ID := fmt.Sprintf("c%d_leaf1", i), fmt.Sprintf("c%d_leaf2", i)
		c := elements.NewState(fmt.Sprintf("c%d", i), elements.KindCompound).WithInitial(leaf1ID)
		leaf1 := elements.NewState(leaf1ID, elements.KindAtomic).
			AddTransition(elements.NewTransition("tick", leaf2ID))
		leaf2 := elements.NewState(leaf2ID, elements.KindAtomic).
			AddTransition(elements.NewTransition("tick", leaf1ID))
		c.AddChild(leaf1).AddChild(leaf2)
		if innermost != nil {
			innermost.AddChild(c)
		} else {
			top = c
		}
		innermost = c
	}
	b.Root().AddChild(top)

	tree, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tree
}

// GenWideTree builds one "main" state with numTransitions outgoing "tick"
// transitions, each guarded so that only the first-declared one ever fires.
// Document order is the interpreter's sole conflict-resolution tie-breaker
// (there is no separate transition-priority field to sort by), so the
// guards are what make the outcome deterministic here rather than
// declaration order alone.
func GenWideTree(numTransitions int) *elements.Tree {
	if numTransitions < 1 {
		numTransitions = 1
	}
	b := elements.NewBuilder(fmt.Sprintf("wide_%d", numTransitions))
	b.Root().WithInitial("main")

	main := elements.NewState("main", elements.KindAtomic)
	for i := 0; i < numTransitions; i++ {
		target := fmt.Sprintf("target%d", i)
		fires := i == 0
		trans := elements.NewTransition("tick", target).WithGuard(func(core.Event) bool { return fires })
		main.AddTransition(trans)

		targetSpec := elements.NewState(target, elements.KindAtomic).
			AddTransition(elements.NewTransition("tick", "main"))
		b.Root().AddChild(targetSpec)
	}
	b.Root().AddChild(main)

	tree, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tree
}

// GenSnapshotYAML generates YAML bytes for a snapshot of a machine of the
// given size, after one event has mutated its configuration.
func GenSnapshotYAML(numStates int, hierarchical bool) []byte {
	var tree *elements.Tree
	if hierarchical {
		tree = GenDeepTree(5)
	} else {
		tree = GenFlatTree(numStates)
	}

	ip := core.NewInterpreter(tree)
	if err := ip.Start(); err != nil {
		panic(err)
	}
	defer ip.Stop()

	if err := ip.Send("tick", nil); err != nil {
		panic(err)
	}

	data, err := yaml.Marshal(ip.Snapshot())
	if err != nil {
		panic(err)
	}
	return data
}
