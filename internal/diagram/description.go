package diagram

import "github.com/seitarof/gen-uml/internal/relation"

// EmptyMarker stands in for a section with no lines.
const EmptyMarker = "None"

// Description is a renderer-agnostic class diagram.
type Description struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// Node is one class box. Placeholder nodes stand for parent names with no
// class of their own and carry a label with the name only.
type Node struct {
	ID          string `yaml:"id"`
	Label       Label  `yaml:"label"`
	Placeholder bool   `yaml:"placeholder,omitempty"`
}

// Label is an ordered list of sections.
type Label struct {
	Sections []Section `yaml:"sections"`
}

// Section is a titled, ordered list of lines. Title may be empty.
type Section struct {
	Title string   `yaml:"title,omitempty"`
	Lines []string `yaml:"lines"`
}

// Edge is one styled relationship.
type Edge struct {
	Source string        `yaml:"source"`
	Target string        `yaml:"target"`
	Kind   relation.Kind `yaml:"-"`
	Label  string        `yaml:"label"`
	Style  Style         `yaml:"style"`
}

// Style holds the visual attributes of an edge. Empty fields use the
// renderer's defaults.
type Style struct {
	Line      string `yaml:"line,omitempty"`
	ArrowHead string `yaml:"arrowhead,omitempty"`
}

// Styles per relationship kind.
var (
	InheritanceStyle = Style{ArrowHead: "empty"}
	AssociationStyle = Style{Line: "dashed"}
	CompositionStyle = Style{Line: "bold", ArrowHead: "diamond"}
)
