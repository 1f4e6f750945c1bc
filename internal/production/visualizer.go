// Package production provides production integrations for a running
// Interpreter: snapshot persistence, transition event publishing, and DOT
// visualization, generalized from the teacher's package of the same name
// (internal/production/*.go) onto internal/core and internal/elements.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"statechartx/internal/elements"
)

// DefaultVisualizer renders an elements.Tree as Graphviz DOT or JSON,
// generalized from the teacher's DefaultVisualizer
// (internal/production/visualizer.go) from primitives.MachineConfig onto
// elements.Tree, with added shapes for Parallel/History/Final nodes that
// the teacher's flat compound/atomic model never had.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for tree, highlighting the state
// ids present in current (typically Interpreter.Configuration()).
func (v *DefaultVisualizer) ExportDOT(tree *elements.Tree, current []string) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Statechart {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	active := map[string]bool{}
	for _, id := range current {
		active[id] = true
	}

	renderState(&buf, tree, tree.Root, active)

	for _, edge := range collectEdges(tree) {
		buf.WriteString(fmt.Sprintf(`  "%s" -> "%s" [label="%s"];`+"\n", edge.From, edge.To, edge.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// treeDump is the JSON-friendly projection of a Tree used by ExportJSON;
// elements.Node carries unresolved builder state (Index fields) that isn't
// meaningful outside this process, so it is not serialized directly.
type treeDump struct {
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Initial  string     `json:"initial,omitempty"`
	Children []treeDump `json:"children,omitempty"`
}

// ExportJSON serializes the state tree's shape (ids, kinds, nesting) to JSON.
func (v *DefaultVisualizer) ExportJSON(tree *elements.Tree) ([]byte, error) {
	return json.MarshalIndent(dumpState(tree, tree.Root), "", "  ")
}

func dumpState(tree *elements.Tree, i elements.Index) treeDump {
	n := tree.Node(i)
	d := treeDump{ID: n.ID, Kind: n.Kind.String()}
	if n.InitialIndex != elements.NoIndex {
		d.Initial = tree.Node(n.InitialIndex).ID
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, dumpState(tree, c))
	}
	return d
}

// Edge represents a transition edge in the rendered graph.
type Edge struct {
	From  string
	To    string
	Label string
}

// collectEdges walks every state's transitions, skipping pseudo-states
// (Initial/History) since their single default transition is rendering
// noise rather than a user-authored edge.
func collectEdges(tree *elements.Tree) []Edge {
	var edges []Edge
	for i := range tree.Nodes {
		n := tree.Nodes[i]
		if !n.Kind.IsStateKind() {
			continue
		}
		for _, ti := range n.Transitions {
			tn := tree.Node(ti)
			label := tn.Event
			if label == "" {
				label = "(eventless)"
			}
			for _, target := range tn.Targets {
				edges = append(edges, Edge{From: n.ID, To: tree.Node(target).ID, Label: label})
			}
		}
	}
	return edges
}

// renderState recursively renders states and subgraphs, shaping Parallel
// clusters light blue, History nodes as diamonds, and Final states with a
// double border, on top of the teacher's compound-cluster/atomic-leaf
// split.
func renderState(buf *bytes.Buffer, tree *elements.Tree, i elements.Index, active map[string]bool) {
	n := tree.Node(i)
	switch n.Kind {
	case elements.KindHistory:
		buf.WriteString(fmt.Sprintf(`  "%s" [label="H%s" shape=diamond];`+"\n",
			n.ID, historyGlyph(n.HistoryType)))
		return
	case elements.KindFinal:
		style := ""
		if active[n.ID] {
			style = ` style=filled fillcolor=lightgreen`
		}
		buf.WriteString(fmt.Sprintf(`  "%s" [label="%s" peripheries=2%s];`+"\n", n.ID, n.ID, style))
		return
	}

	if len(n.Children) == 0 {
		style := ""
		if active[n.ID] {
			style = ` style=filled fillcolor=lightgreen`
		}
		buf.WriteString(fmt.Sprintf(`  "%s" [label="%s"%s];`+"\n", n.ID, n.ID, style))
		return
	}

	clusterID := fmt.Sprintf("cluster_%s", n.ID)
	buf.WriteString(fmt.Sprintf("  subgraph %s {\n", clusterID))
	parentStyle := ""
	if active[n.ID] {
		parentStyle = ` style=filled fillcolor=orange`
	}
	buf.WriteString(fmt.Sprintf(`    label="%s (%s)"%s;`+"\n", n.ID, n.Kind, parentStyle))
	if n.Kind == elements.KindParallel {
		buf.WriteString("    style=filled; fillcolor=lightblue;\n")
	}

	buf.WriteString(fmt.Sprintf(`    "%s" [label="%s" shape=ellipse%s];`+"\n", n.ID, n.ID, parentStyle))

	for _, c := range n.Children {
		renderState(buf, tree, c, active)
	}

	buf.WriteString("  }\n")
}

func historyGlyph(ht elements.HistoryType) string {
	if ht == elements.HistoryDeep {
		return "*"
	}
	return ""
}
