package relation

import "github.com/seitarof/gen-uml/internal/model"

// Inferencer derives association and composition edges from a class map.
type Inferencer interface {
	Infer(classes *model.ClassMap) Result
}

// Result holds the inferred edges. A pair's kind is the set it lives in.
type Result struct {
	Associations EdgeSet
	Compositions EdgeSet
}

type inferencerImpl struct {
	rules []FieldRule
}

// New builds an inferencer with a field rule chain. The first rule that
// matches decides the kind of a field edge.
func New(rules ...FieldRule) Inferencer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &inferencerImpl{rules: rules}
}

// Infer needs the complete map: a type counts as internal only when it is a
// key of classes. Names are compared exactly.
func (r *inferencerImpl) Infer(classes *model.ClassMap) Result {
	res := Result{
		Associations: EdgeSet{},
		Compositions: EdgeSet{},
	}
	classes.Each(func(c *model.ClassModel) {
		for _, f := range c.Fields {
			if !classes.Has(f.Type) {
				continue
			}
			kind, ok := r.classify(c, f)
			if !ok {
				continue
			}
			switch kind {
			case KindComposition:
				res.Compositions.Add(c.Name, f.Type)
			case KindAssociation:
				res.Associations.Add(c.Name, f.Type)
			}
		}
		for _, m := range c.Methods {
			for _, p := range m.Params {
				if classes.Has(p.Type) {
					res.Associations.Add(c.Name, p.Type)
				}
			}
		}
	})
	return res
}

func (r *inferencerImpl) classify(owner *model.ClassModel, field model.FieldModel) (Kind, bool) {
	for _, rule := range r.rules {
		if kind, ok := rule.Try(owner, field); ok {
			return kind, true
		}
	}
	return 0, false
}
