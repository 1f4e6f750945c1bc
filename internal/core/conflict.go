package core

import "statechartx/internal/elements"

// resolveConflicts implements spec.md §4.3: two enabled transitions
// conflict when their exit sets intersect. Within a conflict, the
// transition whose source is a descendant of the other's source preempts
// it (it is "more specific"); otherwise, document order decides, and since
// enabled is already in document-order-of-sources (selectTransitions scans
// the configuration in document order), the earlier entry wins by simply
// never being displaced. Targetless transitions have an empty exit set and
// so never conflict with anything.
func (ip *Interpreter) resolveConflicts(enabled []elements.Index) []elements.Index {
	var filtered []elements.Index
	for _, t1 := range enabled {
		exit1 := ip.statesExitedBy(t1)
		preempted := false
		var toRemove []int
		for i, t2 := range filtered {
			exit2 := ip.statesExitedBy(t2)
			if !intersects(exit1, exit2) {
				continue
			}
			if ip.tree.IsDescendant(ip.tree.Node(t1).Parent, ip.tree.Node(t2).Parent) {
				toRemove = append(toRemove, i)
			} else {
				preempted = true
				break
			}
		}
		if preempted {
			continue
		}
		if len(toRemove) > 0 {
			filtered = removeIndices(filtered, toRemove)
		}
		filtered = append(filtered, t1)
	}
	return filtered
}

func intersects(a, b elemSet) bool {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for i := range small {
		if large.Has(i) {
			return true
		}
	}
	return false
}

func removeIndices(s []elements.Index, remove []int) []elements.Index {
	skip := make(map[int]struct{}, len(remove))
	for _, i := range remove {
		skip[i] = struct{}{}
	}
	out := make([]elements.Index, 0, len(s))
	for i, v := range s {
		if _, drop := skip[i]; drop {
			continue
		}
		out = append(out, v)
	}
	return out
}
