package model

// Void is the return type of a method that declares none.
const Void = "void"

// ClassModel is one class of the scanned project.
type ClassModel struct {
	Name    string
	Fields  []FieldModel
	Methods []MethodModel
	// Parent is the raw parent name as written; it may name a class that is
	// not in the map.
	Parent string
}

// FieldModel is one field variable.
type FieldModel struct {
	Name      string
	Type      string
	Modifiers ModifierSet
}

// MethodModel is one method.
type MethodModel struct {
	Name       string
	ReturnType string
	Params     []ParameterModel
}

// ParameterModel is one (name, type) method parameter.
type ParameterModel struct {
	Name string
	Type string
}

// ModifierSet is an unordered set of modifier keywords.
type ModifierSet map[string]struct{}

// NewModifierSet builds a set from the given keywords.
func NewModifierSet(mods ...string) ModifierSet {
	set := make(ModifierSet, len(mods))
	for _, m := range mods {
		set[m] = struct{}{}
	}
	return set
}

// Has reports whether every given modifier is in the set.
func (s ModifierSet) Has(mods ...string) bool {
	for _, m := range mods {
		if _, ok := s[m]; !ok {
			return false
		}
	}
	return true
}

// InheritancePair records that Child declares Parent as its parent type.
type InheritancePair struct {
	Child  string
	Parent string
}
