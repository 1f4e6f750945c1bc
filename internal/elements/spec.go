package elements

// StateSpec and TransitionSpec are the builder-time, unresolved description
// of a state tree: target references are raw ids (strings) until Build
// resolves them against the whole tree. This mirrors the teacher's
// StateConfig/TransitionConfig split between "as authored" and "as
// compiled", generalized from a flat On map[string][]TransitionConfig to a
// real Parallel/History/Final-aware tree.
type StateSpec struct {
	ID      string
	Kind    Kind
	Initial string // default-entry child id, for Compound/Root only

	HistoryType           HistoryType
	HistoryDefaultTargets []string
	HistoryDefaultContent ActionRef

	OnEntry ActionRef
	OnExit  ActionRef

	Children []*StateSpec
	On       []*TransitionSpec
}

// TransitionSpec is the unresolved form of a Transition node.
type TransitionSpec struct {
	Event   string
	Kind    TransitionKind
	Targets []string
	Guard   GuardRef
	Content ActionRef
}

// NewState starts a state of the given kind. Use the With*/Add* methods to
// fill it in, matching the teacher's StateConfig chaining style.
func NewState(id string, kind Kind) *StateSpec {
	return &StateSpec{ID: id, Kind: kind}
}

func (s *StateSpec) WithInitial(id string) *StateSpec {
	s.Initial = id
	return s
}

func (s *StateSpec) WithEntry(a ActionRef) *StateSpec {
	s.OnEntry = a
	return s
}

func (s *StateSpec) WithExit(a ActionRef) *StateSpec {
	s.OnExit = a
	return s
}

func (s *StateSpec) AddChild(c *StateSpec) *StateSpec {
	s.Children = append(s.Children, c)
	return s
}

func (s *StateSpec) AddTransition(t *TransitionSpec) *StateSpec {
	s.On = append(s.On, t)
	return s
}

// WithHistory configures a KindHistory node's type and default transition.
func (s *StateSpec) WithHistory(ht HistoryType, defaultContent ActionRef, defaultTargets ...string) *StateSpec {
	s.HistoryType = ht
	s.HistoryDefaultContent = defaultContent
	s.HistoryDefaultTargets = defaultTargets
	return s
}

// NewTransition starts a transition reacting to event (use "" for
// eventless) and targeting the named ids (use none for a targetless
// transition, which only runs content).
func NewTransition(event string, targets ...string) *TransitionSpec {
	return &TransitionSpec{Event: event, Targets: targets}
}

func (t *TransitionSpec) WithGuard(g GuardRef) *TransitionSpec {
	t.Guard = g
	return t
}

func (t *TransitionSpec) WithContent(c ActionRef) *TransitionSpec {
	t.Content = c
	return t
}

func (t *TransitionSpec) AsInternal() *TransitionSpec {
	t.Kind = Internal
	return t
}
