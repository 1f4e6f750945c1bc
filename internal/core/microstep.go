package core

import "statechartx/internal/elements"

// microstep runs one exit/content/entry cycle for an already
// conflict-resolved transition set, per spec.md §4.5: exitStates, then
// executeTransitionContent, then enterStates, with the history of every
// exited compound/parallel state recorded before any onexit content runs
// (spec.md §9's resolution of the history-vs-onexit ordering question).
func (ip *Interpreter) microstep(event Event, transitions []elements.Index) {
	exitSet := ip.computeExitSet(transitions)
	ip.exitStates(event, exitSet)
	ip.executeTransitionContent(event, transitions)
	toEnter, defaultEntry, historyContent := ip.computeEntrySet(transitions)
	ip.enterStates(event, toEnter, defaultEntry, historyContent)
}

func (ip *Interpreter) exitStates(event Event, exitSet []elements.Index) {
	// Pass 1: record every exited state's history against the
	// still-live configuration, before anything is mutated. Per spec.md
	// §9's resolution, this must happen in full before any onexit content
	// runs — interleaving per-state would let a shallower state's history
	// recording observe an already-exited deeper sibling as inactive.
	for _, s := range exitSet {
		node := ip.tree.Node(s)
		for _, child := range node.Children {
			if h := ip.tree.Node(child); h.Kind == elements.KindHistory {
				ip.history.Record(h.ID, ip.recordHistoryFor(s, h.HistoryType))
			}
		}
	}

	// Pass 2: exit in order, deepest first.
	for _, s := range exitSet {
		node := ip.tree.Node(s)
		if err := ip.content.Execute(node.OnExit, event); err != nil {
			ip.raiseContentError(err)
		}
		ip.configuration.Delete(s)
	}
}

func (ip *Interpreter) recordHistoryFor(region elements.Index, ht elements.HistoryType) []elements.Index {
	var out []elements.Index
	if ht == elements.HistoryDeep {
		for active := range ip.configuration {
			if ip.tree.Node(active).Kind.IsAtomicLike() && ip.tree.IsDescendant(active, region) {
				out = append(out, active)
			}
		}
		return out
	}
	for _, child := range ip.tree.Node(region).Children {
		if ip.configuration.Has(child) {
			out = append(out, child)
		}
	}
	return out
}

func (ip *Interpreter) executeTransitionContent(event Event, transitions []elements.Index) {
	for _, t := range transitions {
		content := ip.tree.Node(t).Content
		if err := ip.content.Execute(content, event); err != nil {
			ip.raiseContentError(err)
		}
	}
}

func (ip *Interpreter) enterStates(event Event, toEnter []elements.Index, defaultEntry elemSet, historyContent map[elements.Index]elements.ActionRef) {
	for _, s := range toEnter {
		node := ip.tree.Node(s)
		ip.configuration.Add(s)
		if err := ip.content.Execute(node.OnEntry, event); err != nil {
			ip.raiseContentError(err)
		}
		if defaultEntry.Has(s) {
			initial := ip.tree.Node(node.InitialIndex)
			trans := ip.tree.Node(initial.Transitions[0])
			if err := ip.content.Execute(trans.Content, event); err != nil {
				ip.raiseContentError(err)
			}
		}
		if c, ok := historyContent[s]; ok {
			if err := ip.content.Execute(c, event); err != nil {
				ip.raiseContentError(err)
			}
		}
		if node.Kind == elements.KindFinal {
			ip.onFinalEntered(s)
		}
	}
}

// onFinalEntered implements spec.md §4.5's done-event rule: entering a
// Final child raises done.state.<parent> unless the parent is the root (in
// which case the whole machine has reached completion), and if the Final's
// grandparent is a Parallel, done.state.<grandparent> is additionally
// raised once every region of that Parallel is itself in a final state.
func (ip *Interpreter) onFinalEntered(final elements.Index) {
	parent := ip.tree.Node(final).Parent
	if parent == ip.tree.Root {
		ip.running = false
		return
	}
	parentNode := ip.tree.Node(parent)
	ip.internalQueue = append(ip.internalQueue, newDoneEvent("done.state."+parentNode.ID, nil))

	grandparent := parentNode.Parent
	if grandparent == elements.NoIndex {
		return
	}
	if ip.tree.Node(grandparent).Kind != elements.KindParallel {
		return
	}
	for _, region := range ip.tree.Node(grandparent).Children {
		if !ip.isInFinalState(region) {
			return
		}
	}
	ip.internalQueue = append(ip.internalQueue, newDoneEvent("done.state."+ip.tree.Node(grandparent).ID, nil))
}

// isInFinalState reports whether s's currently-active configuration has
// reached completion: an atomic/final leaf is in a final state iff it is a
// Final node; a compound state is in a final state iff its active child is;
// a parallel state is in a final state iff every region is.
func (ip *Interpreter) isInFinalState(s elements.Index) bool {
	node := ip.tree.Node(s)
	switch {
	case node.Kind == elements.KindParallel:
		for _, child := range node.Children {
			if !ip.isInFinalState(child) {
				return false
			}
		}
		return true
	case node.Kind.IsCompoundLike():
		for _, child := range node.Children {
			if ip.configuration.Has(child) {
				return ip.isInFinalState(child)
			}
		}
		return false
	default:
		return node.Kind == elements.KindFinal
	}
}
