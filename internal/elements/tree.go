package elements

import "fmt"

// Tree is the immutable, arena-backed state tree produced by Builder.Build
// or Config.Build. Once constructed it is never mutated; internal/core reads
// it freely from its own goroutine and safely shares it across interpreter
// instances.
type Tree struct {
	Nodes []Node
	Root  Index
}

// Node returns the node at i. Callers are trusted to pass indices obtained
// from the tree itself (NoIndex and out-of-range indices are a programmer
// error, not a runtime condition to recover from).
func (t *Tree) Node(i Index) *Node {
	return &t.Nodes[i]
}

// ByID looks up a state or pseudo-state by its document id. It is O(n) and
// intended for tests/tooling, not the interpreter hot path (which works
// exclusively in terms of Index).
func (t *Tree) ByID(id string) (Index, bool) {
	for i := range t.Nodes {
		if t.Nodes[i].ID == id {
			return Index(i), true
		}
	}
	return NoIndex, false
}

// ProperAncestors returns the chain of ancestors of s, nearest first, up to
// (but not including) stop. If stop is NoIndex, the walk continues to the
// root (inclusive).
func (t *Tree) ProperAncestors(s, stop Index) []Index {
	var out []Index
	for p := t.Nodes[s].Parent; p != NoIndex; p = t.Nodes[p].Parent {
		if p == stop {
			break
		}
		out = append(out, p)
		if p == t.Root {
			break
		}
	}
	return out
}

// IsDescendant reports whether s is strictly beneath ancestor in the tree.
// A node is never its own descendant.
func (t *Tree) IsDescendant(s, ancestor Index) bool {
	for p := t.Nodes[s].Parent; p != NoIndex; p = t.Nodes[p].Parent {
		if p == ancestor {
			return true
		}
		if p == t.Root {
			break
		}
	}
	return false
}

// IsOrIsDescendant reports whether s equals ancestor or is strictly beneath it.
func (t *Tree) IsOrIsDescendant(s, ancestor Index) bool {
	return s == ancestor || t.IsDescendant(s, ancestor)
}

// FindLCCA returns the nearest proper ancestor of states[0] that is itself
// Compound- or Parallel-like (or Root) and has every other state in states
// as a descendant, i.e. the least common compound ancestor, per spec.md
// §4.1. states must be non-empty.
func (t *Tree) FindLCCA(states []Index) Index {
	anc := t.ProperAncestors(states[0], NoIndex)
	for _, candidate := range anc {
		n := t.Nodes[candidate]
		if !(n.Kind == KindRoot || n.Kind == KindCompound || n.Kind == KindParallel) {
			continue
		}
		all := true
		for _, s := range states[1:] {
			if !t.IsDescendant(s, candidate) {
				all = false
				break
			}
		}
		if all {
			return candidate
		}
	}
	return t.Root
}

// FindTarget resolves a raw id reference using the parent-to-top search
// strategy specified for construction-time target resolution: starting at
// start, search the whole subtree under each of start's state children for
// id, then check start itself, then climb to the parent and repeat, until
// the root is exhausted.
func (t *Tree) FindTarget(start Index, id string) (Index, bool) {
	for cur := start; cur != NoIndex; cur = t.Nodes[cur].Parent {
		n := t.Nodes[cur]
		for _, c := range n.Children {
			if found, ok := t.findIn(c, id); ok {
				return found, true
			}
		}
		if n.ID == id {
			return cur, true
		}
		if cur == t.Root {
			break
		}
	}
	return NoIndex, false
}

// findIn looks for id within the subtree rooted at s (s included), not
// crossing back up to parents.
func (t *Tree) findIn(s Index, id string) (Index, bool) {
	n := t.Nodes[s]
	if n.ID == id {
		return s, true
	}
	for _, c := range n.Children {
		if found, ok := t.findIn(c, id); ok {
			return found, true
		}
	}
	return NoIndex, false
}

// Validate checks the structural invariants of the data model once every
// id has been assigned an Order and every target reference resolved. Build
// calls this before returning a Tree.
func (t *Tree) Validate() error {
	seen := map[string]Index{}
	for i := range t.Nodes {
		n := t.Nodes[i]
		if n.ID == "" {
			continue // pseudo-nodes (Initial/Transition) are unidentified
		}
		if prev, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q (nodes %d and %d)", ErrInvalidTree, n.ID, prev, i)
		}
		seen[n.ID] = Index(i)
	}

	for i := range t.Nodes {
		n := t.Nodes[i]
		if n.Kind.IsCompoundLike() {
			if n.InitialIndex == NoIndex {
				return fmt.Errorf("%w: %q has no default initial child", ErrInvalidTree, n.ID)
			}
		}
		if n.Kind == KindTransition && n.TransitionKind == Internal {
			for _, target := range n.Targets {
				dom := t.FindLCCA(append([]Index{n.Parent}, target))
				if t.Nodes[dom].Kind == KindParallel && !t.IsOrIsDescendant(target, n.Parent) {
					return fmt.Errorf("%w: internal transition on %q targets %q outside its source, crossing a parallel region", ErrInvalidTree, t.Nodes[n.Parent].ID, t.Nodes[target].ID)
				}
			}
		}
	}
	return nil
}

// AssignDocumentOrder walks the tree in preorder (root, then each child's
// full subtree in document order, pseudo-nodes visited alongside their
// owning state) and stamps Order on every node so that ascending Order is
// entry order and descending Order is exit order.
func (t *Tree) AssignDocumentOrder() {
	counter := 0
	var visit func(i Index)
	visit = func(i Index) {
		t.Nodes[i].Order = counter
		counter++
		n := t.Nodes[i]
		if n.InitialIndex != NoIndex {
			visit(n.InitialIndex)
		}
		if n.Kind == KindHistory {
			t.Nodes[n.DefaultTransition].Order = counter
			counter++
		}
		for _, tr := range n.Transitions {
			t.Nodes[tr].Order = counter
			counter++
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(t.Root)
}
