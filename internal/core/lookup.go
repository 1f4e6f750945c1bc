package core

// MatchTransition implements the stateless lookup spec.md §4.7's flat
// Machine surface needs: given a state id and an event name, find that
// state's own first document-order transition whose event pattern matches
// (matchesEvent, selection.go — so "a.b" still matches "a.b.c", exactly as
// Send/selectTransitions would see it) and whose guard passes (via this
// Interpreter's configured GuardEvaluator), and return its single target's
// id. It never touches the running configuration or queues; unlike Send it
// does not drive a transition, only answers "what would fire".
func (ip *Interpreter) MatchTransition(stateID, eventName string) (target string, ok bool) {
	idx, found := ip.tree.ByID(stateID)
	if !found {
		return "", false
	}

	event := NewExternalEvent(eventName, nil)
	node := ip.tree.Node(idx)
	for _, tIdx := range node.Transitions {
		trans := ip.tree.Node(tIdx)
		if !matchesEvent(trans.Event, eventName) {
			continue
		}
		passed, err := ip.guardEval.Eval(trans.Guard, event)
		if err != nil || !passed {
			continue
		}
		if len(trans.Targets) != 1 {
			continue
		}
		return ip.tree.Node(trans.Targets[0]).ID, true
	}
	return "", false
}
