package elements

import "fmt"

// Builder assembles a StateSpec tree into an immutable Tree. It is the
// "Builder" named in the component table: construction-time validation
// (ErrUnresolvedTarget, ErrInvalidTree) runs inside Build, never at runtime.
type Builder struct {
	root *StateSpec
}

// NewBuilder starts a builder for a tree whose root carries rootID.
func NewBuilder(rootID string) *Builder {
	return &Builder{root: &StateSpec{ID: rootID, Kind: KindRoot}}
}

// Root returns the root StateSpec for further configuration (WithInitial,
// AddChild, ...).
func (b *Builder) Root() *StateSpec {
	return b.root
}

// Build compiles the configured spec tree into an arena-backed Tree.
func (b *Builder) Build() (*Tree, error) {
	return BuildTree(b.root)
}

// BuildTree compiles a standalone StateSpec tree (e.g. one produced by
// decoding a Config) into an arena-backed Tree.
func BuildTree(root *StateSpec) (*Tree, error) {
	if root.Kind != KindRoot {
		return nil, fmt.Errorf("%w: root spec must have KindRoot, got %s", ErrInvalidTree, root.Kind)
	}

	t := &Tree{}
	pending := map[Index]*StateSpec{} // state index -> its spec, for pass 2 resolution
	type pendingTrans struct {
		idx    Index
		source Index // where FindTarget search begins
		refs   []string
	}
	var transRefs []pendingTrans

	var allocState func(spec *StateSpec, parent Index) Index
	allocState = func(spec *StateSpec, parent Index) Index {
		idx := Index(len(t.Nodes))
		t.Nodes = append(t.Nodes, Node{
			ID:           spec.ID,
			Kind:         spec.Kind,
			Parent:       parent,
			InitialIndex: NoIndex,
			OnEntry:      spec.OnEntry,
			OnExit:       spec.OnExit,
			HistoryType:  spec.HistoryType,
		})
		pending[idx] = spec

		for _, childSpec := range spec.Children {
			childIdx := allocState(childSpec, idx)
			t.Nodes[idx].Children = append(t.Nodes[idx].Children, childIdx)
		}

		if spec.Kind.IsCompoundLike() && spec.Initial != "" {
			transIdx := allocTransition(t, idx, &TransitionSpec{Targets: []string{spec.Initial}})
			initIdx := Index(len(t.Nodes))
			t.Nodes = append(t.Nodes, Node{
				Kind:         KindInitial,
				Parent:       idx,
				InitialIndex: NoIndex,
				Transitions:  []Index{transIdx},
			})
			t.Nodes[transIdx].Parent = initIdx
			t.Nodes[idx].InitialIndex = initIdx
			transRefs = append(transRefs, pendingTrans{idx: transIdx, source: idx, refs: []string{spec.Initial}})
		}

		if spec.Kind == KindHistory {
			transIdx := allocTransition(t, idx, &TransitionSpec{Content: spec.HistoryDefaultContent, Targets: spec.HistoryDefaultTargets})
			t.Nodes[idx].DefaultTransition = transIdx
			transRefs = append(transRefs, pendingTrans{idx: transIdx, source: parent, refs: spec.HistoryDefaultTargets})
		}

		for _, transSpec := range spec.On {
			transIdx := allocTransition(t, idx, transSpec)
			t.Nodes[idx].Transitions = append(t.Nodes[idx].Transitions, transIdx)
			transRefs = append(transRefs, pendingTrans{idx: transIdx, source: idx, refs: transSpec.Targets})
		}

		return idx
	}

	t.Root = allocState(root, NoIndex)

	for _, pt := range transRefs {
		targets := make([]Index, 0, len(pt.refs))
		for _, ref := range pt.refs {
			resolved, ok := t.FindTarget(pt.source, ref)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnresolvedTarget, ref)
			}
			targets = append(targets, resolved)
		}
		t.Nodes[pt.idx].Targets = targets
	}

	t.AssignDocumentOrder()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// allocTransition allocates a bare Transition node (Targets left unresolved
// until pass 2) and returns its index. For a state's own transitions parent
// is already the owning state; for an Initial default it is a placeholder
// that the caller overwrites once the Initial pseudo-node is allocated.
func allocTransition(t *Tree, parent Index, spec *TransitionSpec) Index {
	idx := Index(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{
		Kind:           KindTransition,
		Parent:         parent,
		InitialIndex:   NoIndex,
		Event:          spec.Event,
		TransitionKind: spec.Kind,
		TargetRefs:     spec.Targets,
		Guard:          spec.Guard,
		Content:        spec.Content,
	})
	return idx
}
