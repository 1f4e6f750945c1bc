package core

import (
	"sort"

	"statechartx/internal/elements"
)

// elemSet is an insertion-order-agnostic set of element indices that can be
// linearized by document order on demand. The entry/exit set algorithms in
// spec.md §4.4 describe "ordered sets" whose emission order is document
// order, not insertion order, so storage is a plain map and ordering is a
// final sort step.
type elemSet map[elements.Index]struct{}

func newElemSet(idx ...elements.Index) elemSet {
	s := make(elemSet, len(idx))
	for _, i := range idx {
		s[i] = struct{}{}
	}
	return s
}

func (s elemSet) Add(i elements.Index) {
	s[i] = struct{}{}
}

func (s elemSet) Has(i elements.Index) bool {
	_, ok := s[i]
	return ok
}

func (s elemSet) Delete(i elements.Index) {
	delete(s, i)
}

// Ascending returns the set's members sorted by ascending document Order
// (entry order: ancestors before descendants).
func (s elemSet) Ascending(tree *elements.Tree) []elements.Index {
	return s.sorted(tree, true)
}

// Descending returns the set's members sorted by descending document Order
// (exit order: descendants before ancestors).
func (s elemSet) Descending(tree *elements.Tree) []elements.Index {
	return s.sorted(tree, false)
}

func (s elemSet) sorted(tree *elements.Tree, ascending bool) []elements.Index {
	out := make([]elements.Index, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool {
		oa, ob := tree.Node(out[a]).Order, tree.Node(out[b]).Order
		if ascending {
			return oa < ob
		}
		return oa > ob
	})
	return out
}

// hasDescendantOf reports whether any member of s is a strict descendant of
// ancestor, per the "does not already have a descendant in statesToEnter"
// check in addDescendantStatesToEnter.
func (s elemSet) hasDescendantOf(tree *elements.Tree, ancestor elements.Index) bool {
	for i := range s {
		if tree.IsDescendant(i, ancestor) {
			return true
		}
	}
	return false
}
