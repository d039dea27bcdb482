package parser

// Declaration is the language-agnostic record of one class.
type Declaration struct {
	Name    string
	Parent  string
	Fields  []FieldDecl
	Methods []MethodDecl
}

// FieldDecl is one field declaration. A single declaration may introduce
// several variables that share Type and Modifiers.
type FieldDecl struct {
	Names     []string
	Type      string
	Modifiers []string
}

// MethodDecl is one method declaration. An empty ReturnType means none was
// declared.
type MethodDecl struct {
	Name       string
	ReturnType string
	Params     []Param
}

// Param is one method parameter.
type Param struct {
	Name string
	Type string
}

// UnitError reports a source unit (file or package) that failed to parse.
type UnitError struct {
	Unit string
	Err  error
}

func (e *UnitError) Error() string {
	return e.Unit + ": " + e.Err.Error()
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// Result is the outcome of scanning one root. Declarations are in the fixed
// traversal order of the source.
type Result struct {
	Declarations []Declaration
	Failures     []*UnitError
}
