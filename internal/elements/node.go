package elements

// Index is a stable position of a Node within a Tree's arena. Parent and
// child links are Index values rather than pointers, per the "stable index"
// representation called out in the data model design notes.
type Index int

// NoIndex marks the absence of a link (a root's parent, a missing
// InitialIndex, an unresolved default).
const NoIndex Index = -1

// GuardRef and ActionRef are opaque payloads supplied by whoever builds the
// tree (closures, expression strings, goja sources, ...). internal/core
// never interprets them; it only ever hands them to a host-supplied
// GuardEvaluator or ContentExecutor.
type GuardRef = any
type ActionRef = any

// Node is the single representation for every element kind in the tree.
// Only the fields relevant to a given Kind are meaningful; irrelevant fields
// are left at their zero value. This mirrors the teacher's "typed variant +
// Validate()" shape (stateconfig.go) collapsed onto one arena-friendly type
// instead of a pointer tree of per-kind structs.
type Node struct {
	ID     string
	Kind   Kind
	Parent Index

	// Order is the global preorder (document-order) index assigned during
	// Build. Ascending Order is entry order; descending Order is exit order.
	Order int

	// Children holds state children in document order, for Root/Compound/
	// Parallel, including any History pseudo-states declared there. It never
	// includes Initial/Transition nodes.
	Children []Index

	// InitialIndex names the Initial pseudo-node for Root/Compound. It is
	// NoIndex for Parallel/Atomic/Final, which have no default-entry child.
	InitialIndex Index

	// Transitions holds this state's own outbound Transition nodes, in
	// document order. Meaningful for Root/Compound/Parallel/Atomic/Final.
	Transitions []Index

	// OnEntry / OnExit are opaque executable content, run when this state
	// is entered or exited. Meaningful for Root/Compound/Parallel/Atomic/
	// Final.
	OnEntry ActionRef
	OnExit  ActionRef

	// History-only fields.
	HistoryType       HistoryType
	DefaultTransition Index // the History node's own single default Transition

	// Transition-only fields.
	Event          string // "" means eventless; "*" means any named event
	TransitionKind TransitionKind
	TargetRefs     []string // raw id references, as authored
	Targets        []Index  // resolved target element indices, set at Build
	Guard          GuardRef
	Content        ActionRef
}

// IsStateKind reports whether k denotes a tree state (as opposed to a
// pseudo-node like Initial/History or a Transition).
func (k Kind) IsStateKind() bool {
	switch k {
	case KindRoot, KindCompound, KindParallel, KindAtomic, KindFinal:
		return true
	default:
		return false
	}
}

// IsAtomicLike reports whether a state of this kind is a configuration leaf:
// it owns no children of its own and is where selectTransitions/
// selectEventlessTransitions begin their ancestor walk.
func (k Kind) IsAtomicLike() bool {
	return k == KindAtomic || k == KindFinal
}

// IsCompoundLike reports whether a state of this kind carries a default
// initial child (Root behaves like a Compound for this purpose).
func (k Kind) IsCompoundLike() bool {
	return k == KindRoot || k == KindCompound
}
