package core

import "statechartx/internal/elements"

// getEffectiveTargetStates resolves a transition's declared Targets,
// dereferencing any History pseudostate target through history (falling
// back to the history node's default transition when nothing has been
// recorded yet), per spec.md §4.1.
func (ip *Interpreter) getEffectiveTargetStates(t elements.Index) []elements.Index {
	trans := ip.tree.Node(t)
	var out []elements.Index
	seen := newElemSet()
	for _, target := range trans.Targets {
		for _, resolved := range ip.resolveEffectiveTarget(target) {
			if !seen.Has(resolved) {
				seen.Add(resolved)
				out = append(out, resolved)
			}
		}
	}
	return out
}

func (ip *Interpreter) resolveEffectiveTarget(target elements.Index) []elements.Index {
	node := ip.tree.Node(target)
	if node.Kind != elements.KindHistory {
		return []elements.Index{target}
	}
	if stored, ok := ip.history.Restore(node.ID); ok {
		return stored
	}
	def := ip.tree.Node(node.DefaultTransition)
	var out []elements.Index
	for _, t := range def.Targets {
		out = append(out, ip.resolveEffectiveTarget(t)...)
	}
	return out
}

// getTransitionDomain computes the region that a transition's exit/entry
// sets are scoped to, per spec.md §4.1: the least common compound ancestor
// of the source and every effective target, unless the transition is
// internal, its source is compound, and every effective target is a
// descendant of the source — in which case the domain is the source itself
// and nothing above it is disturbed.
func (ip *Interpreter) getTransitionDomain(t elements.Index) elements.Index {
	trans := ip.tree.Node(t)
	targets := ip.getEffectiveTargetStates(t)
	if len(targets) == 0 {
		return elements.NoIndex
	}
	source := trans.Parent
	if trans.TransitionKind == elements.Internal && ip.tree.Node(source).Kind.IsCompoundLike() {
		allDescendants := true
		for _, target := range targets {
			if !ip.tree.IsDescendant(target, source) {
				allDescendants = false
				break
			}
		}
		if allDescendants {
			return source
		}
	}
	states := append([]elements.Index{source}, targets...)
	return ip.tree.FindLCCA(states)
}

// statesExitedBy returns every currently-active state that would be exited
// if t fires: the strict descendants of t's domain that are in the
// configuration. The domain itself is never exited.
func (ip *Interpreter) statesExitedBy(t elements.Index) elemSet {
	domain := ip.getTransitionDomain(t)
	out := newElemSet()
	if domain == elements.NoIndex {
		return out
	}
	for active := range ip.configuration {
		if ip.tree.IsDescendant(active, domain) {
			out.Add(active)
		}
	}
	return out
}
