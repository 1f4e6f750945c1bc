package elements

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the declarative, YAML-loadable form of a state tree, generalized
// from the teacher's flat MachineConfig/StateConfig (machineconfig.go,
// stateconfig.go) to cover Parallel/History/Final kinds. Guard and Content
// are opaque strings here (expression text or action names) exactly like
// the teacher's GuardRef/ActionRef `any` fields — internal/extensibility
// supplies the evaluator that gives them meaning.
type Config struct {
	ID      string            `yaml:"id"`
	Initial string            `yaml:"initial,omitempty"`
	States  []*StateConfig    `yaml:"states"`
	On      []*TransitionYAML `yaml:"on,omitempty"`
}

// StateConfig is one node in the declarative tree.
type StateConfig struct {
	ID             string            `yaml:"id"`
	Type           string            `yaml:"type"` // compound | parallel | atomic | final | history
	Initial        string            `yaml:"initial,omitempty"`
	History        string            `yaml:"history,omitempty"` // shallow | deep
	HistoryDefault []string          `yaml:"historyDefault,omitempty"`
	Entry          string            `yaml:"entry,omitempty"`
	Exit           string            `yaml:"exit,omitempty"`
	States         []*StateConfig    `yaml:"states,omitempty"`
	On             []*TransitionYAML `yaml:"on,omitempty"`
}

// TransitionYAML is the declarative form of a Transition node.
type TransitionYAML struct {
	Event    string   `yaml:"event,omitempty"`
	Target   []string `yaml:"target,omitempty"`
	Internal bool     `yaml:"internal,omitempty"`
	Guard    string   `yaml:"guard,omitempty"`
	Content  string   `yaml:"content,omitempty"`
}

// LoadConfigFile reads and parses a Config from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("elements: reading config: %w", err)
	}
	return LoadConfig(data)
}

// LoadConfig parses a Config from raw YAML bytes.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("elements: parsing config: %w", err)
	}
	return &cfg, nil
}

// Build compiles the Config into an arena-backed Tree.
func (c *Config) Build() (*Tree, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("%w: config has no id", ErrInvalidTree)
	}
	root := &StateSpec{ID: c.ID, Kind: KindRoot, Initial: c.Initial}
	for _, child := range c.States {
		spec, err := child.toSpec()
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, spec)
	}
	for _, t := range c.On {
		root.On = append(root.On, t.toSpec())
	}
	return BuildTree(root)
}

func kindFromType(typ string) (Kind, error) {
	switch typ {
	case "compound", "":
		return KindCompound, nil
	case "parallel":
		return KindParallel, nil
	case "atomic":
		return KindAtomic, nil
	case "final":
		return KindFinal, nil
	case "history":
		return KindHistory, nil
	default:
		return 0, fmt.Errorf("%w: unknown state type %q", ErrInvalidTree, typ)
	}
}

func (sc *StateConfig) toSpec() (*StateSpec, error) {
	kind, err := kindFromType(sc.Type)
	if err != nil {
		return nil, err
	}
	spec := &StateSpec{
		ID:      sc.ID,
		Kind:    kind,
		Initial: sc.Initial,
	}
	if sc.Entry != "" {
		spec.OnEntry = sc.Entry
	}
	if sc.Exit != "" {
		spec.OnExit = sc.Exit
	}
	if kind == KindHistory {
		ht := HistoryShallow
		if sc.History == "deep" {
			ht = HistoryDeep
		}
		spec.HistoryType = ht
		spec.HistoryDefaultTargets = sc.HistoryDefault
	}
	for _, child := range sc.States {
		childSpec, err := child.toSpec()
		if err != nil {
			return nil, err
		}
		spec.Children = append(spec.Children, childSpec)
	}
	for _, t := range sc.On {
		spec.On = append(spec.On, t.toSpec())
	}
	return spec, nil
}

func (t *TransitionYAML) toSpec() *TransitionSpec {
	ts := &TransitionSpec{
		Event:   t.Event,
		Targets: t.Target,
	}
	if t.Internal {
		ts.Kind = Internal
	}
	if t.Guard != "" {
		ts.Guard = t.Guard
	}
	if t.Content != "" {
		ts.Content = t.Content
	}
	return ts
}
