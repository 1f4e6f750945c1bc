package core

import (
	"strings"

	"statechartx/internal/elements"
)

// matchesEvent implements the dotted-prefix event matching rules from
// spec.md §4.2: "*" matches any named event, an exact match always
// matches, and "a.b" also matches "a.b.c" (a dotted descendant of the
// pattern). The empty pattern denotes an eventless transition and never
// matches a named event.
func matchesEvent(pattern, name string) bool {
	if pattern == "" {
		return false
	}
	if pattern == "*" {
		return name != ""
	}
	if pattern == name {
		return true
	}
	return strings.HasPrefix(name, pattern+".")
}

// configurationLeaves returns the atomic/final states currently active, in
// ascending document order, the scan order selectTransitions/
// selectEventlessTransitions use.
func (ip *Interpreter) configurationLeaves() []elements.Index {
	var leaves []elements.Index
	for idx := range ip.configuration {
		if ip.tree.Node(idx).Kind.IsAtomicLike() {
			leaves = append(leaves, idx)
		}
	}
	return sortByOrder(ip.tree, leaves)
}

func sortByOrder(tree *elements.Tree, idxs []elements.Index) []elements.Index {
	s := newElemSet(idxs...)
	return s.Ascending(tree)
}

// selectTransitions finds, for each atomic/final state in the configuration
// (in document order), the first enabled transition reacting to event among
// that state's own transitions and those of its ancestors (nearest first),
// per spec.md §4.2. At most one transition is selected per leaf.
func (ip *Interpreter) selectTransitions(event Event) []elements.Index {
	return ip.selectFrom(ip.configurationLeaves(), func(pattern string) bool {
		return matchesEvent(pattern, event.Name)
	}, event)
}

// selectEventlessTransitions finds the first enabled eventless transition
// for each atomic/final state, by the same ancestor walk.
func (ip *Interpreter) selectEventlessTransitions() []elements.Index {
	return ip.selectFrom(ip.configurationLeaves(), func(pattern string) bool {
		return pattern == ""
	}, Event{})
}

func (ip *Interpreter) selectFrom(leaves []elements.Index, match func(pattern string) bool, event Event) []elements.Index {
	var enabled []elements.Index
	for _, leaf := range leaves {
		chain := append([]elements.Index{leaf}, ip.tree.ProperAncestors(leaf, elements.NoIndex)...)
		found := false
		for _, s := range chain {
			node := ip.tree.Node(s)
			for _, tIdx := range node.Transitions {
				trans := ip.tree.Node(tIdx)
				if !match(trans.Event) {
					continue
				}
				ok, err := ip.guardEval.Eval(trans.Guard, event)
				if err != nil {
					ip.reportError(err)
					continue
				}
				if !ok {
					continue
				}
				enabled = append(enabled, tIdx)
				found = true
				break
			}
			if found {
				break
			}
		}
	}
	return enabled
}
