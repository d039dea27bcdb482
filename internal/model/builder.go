package model

import "github.com/seitarof/gen-uml/internal/parser"

// Result is the output of Build.
type Result struct {
	Classes     *ClassMap
	Inheritance []InheritancePair
	// Overwritten lists, in order, each class name that replaced an earlier
	// declaration of the same name.
	Overwritten []string
}

// Build turns declarations into class models. Declarations are applied in
// order; a later declaration with a known name replaces the earlier class
// model. Inheritance pairs are recorded per declaration, so a replaced
// declaration keeps its pair, and a declared parent produces a pair whether
// or not it resolves.
func Build(decls []parser.Declaration) *Result {
	res := &Result{Classes: NewClassMap()}
	for _, d := range decls {
		if res.Classes.Put(classFromDecl(d)) {
			res.Overwritten = append(res.Overwritten, d.Name)
		}
		if d.Parent != "" {
			res.Inheritance = append(res.Inheritance, InheritancePair{Child: d.Name, Parent: d.Parent})
		}
	}
	return res
}

func classFromDecl(d parser.Declaration) *ClassModel {
	c := &ClassModel{Name: d.Name, Parent: d.Parent}
	for _, f := range d.Fields {
		mods := NewModifierSet(f.Modifiers...)
		for _, name := range f.Names {
			c.Fields = append(c.Fields, FieldModel{Name: name, Type: f.Type, Modifiers: mods})
		}
	}
	for _, md := range d.Methods {
		m := MethodModel{Name: md.Name, ReturnType: md.ReturnType}
		if m.ReturnType == "" {
			m.ReturnType = Void
		}
		for _, p := range md.Params {
			m.Params = append(m.Params, ParameterModel{Name: p.Name, Type: p.Type})
		}
		c.Methods = append(c.Methods, m)
	}
	return c
}
