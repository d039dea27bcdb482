package diagram

import (
	"context"
	"fmt"
	"strings"

	"github.com/seitarof/gen-uml/internal/model"
	"github.com/seitarof/gen-uml/internal/relation"
)

// Renderer turns a description into a document and returns its path.
type Renderer interface {
	Render(ctx context.Context, d *Description, outputBase string) (string, error)
}

// Emitter builds the description and hands it to a renderer.
type Emitter interface {
	Emit(ctx context.Context, in Input, outputBase string) (string, error)
}

// Input is everything the description is built from.
type Input struct {
	Classes      *model.ClassMap
	Inheritance  []model.InheritancePair
	Associations relation.EdgeSet
	Compositions relation.EdgeSet
}

type emitterImpl struct {
	renderer Renderer
}

// NewEmitter creates an emitter rendering through r.
func NewEmitter(r Renderer) Emitter {
	return &emitterImpl{renderer: r}
}

// Emit makes exactly one render call; there is no retry.
func (e *emitterImpl) Emit(ctx context.Context, in Input, outputBase string) (string, error) {
	path, err := e.renderer.Render(ctx, Describe(in), outputBase)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return path, nil
}

// Describe builds the diagram description. The result depends only on the
// input, so equal inputs give equal descriptions.
func Describe(in Input) *Description {
	d := &Description{}
	in.Classes.Each(func(c *model.ClassModel) {
		d.Nodes = append(d.Nodes, Node{ID: c.Name, Label: classLabel(c)})
	})

	extends := make(map[relation.Pair]struct{}, len(in.Inheritance))
	placeholders := map[string]struct{}{}
	for _, p := range in.Inheritance {
		extends[relation.Pair{Source: p.Child, Target: p.Parent}] = struct{}{}
		if in.Classes.Has(p.Parent) {
			continue
		}
		if _, ok := placeholders[p.Parent]; !ok {
			placeholders[p.Parent] = struct{}{}
			d.Nodes = append(d.Nodes, Node{
				ID:          p.Parent,
				Label:       Label{Sections: []Section{{Lines: []string{p.Parent}}}},
				Placeholder: true,
			})
		}
	}

	for _, p := range in.Inheritance {
		d.Edges = append(d.Edges, Edge{
			Source: p.Parent,
			Target: p.Child,
			Kind:   relation.KindInheritance,
			Label:  "extends",
			Style:  InheritanceStyle,
		})
	}
	for _, p := range in.Associations.Sorted() {
		if in.Compositions.Has(p.Source, p.Target) {
			continue
		}
		if _, ok := extends[p]; ok {
			continue
		}
		d.Edges = append(d.Edges, Edge{
			Source: p.Source,
			Target: p.Target,
			Kind:   relation.KindAssociation,
			Label:  "association",
			Style:  AssociationStyle,
		})
	}
	for _, p := range in.Compositions.Sorted() {
		d.Edges = append(d.Edges, Edge{
			Source: p.Source,
			Target: p.Target,
			Kind:   relation.KindComposition,
			Label:  "composition",
			Style:  CompositionStyle,
		})
	}
	return d
}

func classLabel(c *model.ClassModel) Label {
	fields := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, f.Name+": "+f.Type)
	}
	methods := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		methods = append(methods, methodLine(m))
	}
	return Label{Sections: []Section{
		{Lines: []string{c.Name}},
		{Title: "Fields:", Lines: orEmpty(fields)},
		{Title: "Methods:", Lines: orEmpty(methods)},
	}}
}

func methodLine(m model.MethodModel) string {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.Name+": "+p.Type)
	}
	return m.Name + "(" + strings.Join(params, ", ") + "): " + m.ReturnType
}

func orEmpty(lines []string) []string {
	if len(lines) == 0 {
		return []string{EmptyMarker}
	}
	return lines
}
