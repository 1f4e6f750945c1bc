package core

import "statechartx/internal/elements"

// computeExitSet unions statesExitedBy across every transition in the set
// and linearizes it in exit order (descendants before ancestors), per
// spec.md §4.4.
func (ip *Interpreter) computeExitSet(transitions []elements.Index) []elements.Index {
	all := newElemSet()
	for _, t := range transitions {
		for s := range ip.statesExitedBy(t) {
			all.Add(s)
		}
	}
	return all.Descending(ip.tree)
}

// computeEntrySet computes the states to enter for a transition set, the
// states among them that should run their default-entry content, and the
// content attached to any history node whose default transition fired
// (because nothing had been recorded for it yet), per spec.md §4.4.
func (ip *Interpreter) computeEntrySet(transitions []elements.Index) (toEnter []elements.Index, defaultEntry elemSet, historyContent map[elements.Index]elements.ActionRef) {
	enter := newElemSet()
	defaultEntry = newElemSet()
	historyContent = map[elements.Index]elements.ActionRef{}

	for _, t := range transitions {
		targets := ip.getEffectiveTargetStates(t)
		for _, target := range targets {
			ip.addDescendantStatesToEnter(target, enter, defaultEntry, historyContent)
		}
		domain := ip.getTransitionDomain(t)
		for _, target := range targets {
			ip.addAncestorStatesToEnter(target, domain, enter, defaultEntry, historyContent)
		}
	}
	return enter.Ascending(ip.tree), defaultEntry, historyContent
}

func (ip *Interpreter) addDescendantStatesToEnter(s elements.Index, enter, defaultEntry elemSet, historyContent map[elements.Index]elements.ActionRef) {
	node := ip.tree.Node(s)

	if node.Kind == elements.KindHistory {
		if stored, ok := ip.history.Restore(node.ID); ok {
			for _, target := range stored {
				ip.addDescendantStatesToEnter(target, enter, defaultEntry, historyContent)
			}
			for _, target := range stored {
				ip.addAncestorStatesToEnter(target, node.Parent, enter, defaultEntry, historyContent)
			}
			return
		}
		def := ip.tree.Node(node.DefaultTransition)
		historyContent[s] = def.Content
		for _, target := range def.Targets {
			ip.addDescendantStatesToEnter(target, enter, defaultEntry, historyContent)
		}
		for _, target := range def.Targets {
			ip.addAncestorStatesToEnter(target, node.Parent, enter, defaultEntry, historyContent)
		}
		return
	}

	enter.Add(s)

	switch {
	case node.Kind.IsCompoundLike():
		defaultEntry.Add(s)
		initial := ip.tree.Node(node.InitialIndex)
		trans := ip.tree.Node(initial.Transitions[0])
		for _, target := range trans.Targets {
			ip.addDescendantStatesToEnter(target, enter, defaultEntry, historyContent)
		}
		for _, target := range trans.Targets {
			ip.addAncestorStatesToEnter(target, s, enter, defaultEntry, historyContent)
		}
	case node.Kind == elements.KindParallel:
		for _, child := range node.Children {
			if !enter.hasDescendantOf(ip.tree, child) {
				ip.addDescendantStatesToEnter(child, enter, defaultEntry, historyContent)
			}
		}
	}
}

func (ip *Interpreter) addAncestorStatesToEnter(s, stop elements.Index, enter, defaultEntry elemSet, historyContent map[elements.Index]elements.ActionRef) {
	for _, ancestor := range ip.tree.ProperAncestors(s, stop) {
		enter.Add(ancestor)
		if ip.tree.Node(ancestor).Kind == elements.KindParallel {
			for _, child := range ip.tree.Node(ancestor).Children {
				if !enter.hasDescendantOf(ip.tree, child) {
					ip.addDescendantStatesToEnter(child, enter, defaultEntry, historyContent)
				}
			}
		}
	}
}
