package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// ErrSyntax marks a source file the grammar could not parse cleanly.
var ErrSyntax = errors.New("syntax error")

const (
	javaClassDecl      = "class_declaration"
	javaClassBody      = "class_body"
	javaFieldDecl      = "field_declaration"
	javaMethodDecl     = "method_declaration"
	javaModifiers      = "modifiers"
	javaVarDeclarator  = "variable_declarator"
	javaFormalParam    = "formal_parameter"
	javaSpreadParam    = "spread_parameter"
	javaGenericType    = "generic_type"
	javaArrayType      = "array_type"
	javaAnnotatedType  = "annotated_type"
	javaMarkerAnnot    = "marker_annotation"
	javaAnnotation     = "annotation"
	javaTypeIdentifier = "type_identifier"
)

// JavaParser extracts class declarations from Java source with tree-sitter.
//
// Type names are reduced to the written type without type arguments or array
// dimensions, so List<Leash> becomes List and Leash[] becomes Leash. Only
// class declarations are reported, nested ones included; interfaces, enums,
// records and constructors are ignored.
type JavaParser struct{}

// NewJava returns a Parser over .java files.
func NewJava(opts ...Option) Parser {
	return NewTree(&JavaParser{}, opts...)
}

func (p *JavaParser) Language() string { return "java" }

func (p *JavaParser) Extensions() []string { return []string{".java"} }

func (p *JavaParser) ParseFile(ctx context.Context, path string, content []byte) ([]Declaration, error) {
	ts := sitter.NewParser()
	ts.SetLanguage(java.GetLanguage())

	tree, err := ts.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w near line %d", ErrSyntax, firstErrorLine(root))
	}

	var decls []Declaration
	collectJavaClasses(root, content, &decls)
	return decls, nil
}

// collectJavaClasses visits the tree in source order, so an outer class is
// reported before the classes nested in it.
func collectJavaClasses(node *sitter.Node, src []byte, out *[]Declaration) {
	if node.Type() == javaClassDecl {
		if decl, ok := javaClass(node, src); ok {
			*out = append(*out, decl)
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectJavaClasses(node.NamedChild(i), src, out)
	}
}

func javaClass(node *sitter.Node, src []byte) (Declaration, bool) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return Declaration{}, false
	}
	decl := Declaration{Name: name.Content(src)}

	if super := node.ChildByFieldName("superclass"); super != nil && super.NamedChildCount() > 0 {
		decl.Parent = javaTypeName(super.NamedChild(0), src)
	}

	body := node.ChildByFieldName("body")
	if body == nil || body.Type() != javaClassBody {
		return decl, true
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case javaFieldDecl:
			decl.Fields = append(decl.Fields, javaField(member, src))
		case javaMethodDecl:
			decl.Methods = append(decl.Methods, javaMethod(member, src))
		}
	}
	return decl, true
}

func javaField(node *sitter.Node, src []byte) FieldDecl {
	field := FieldDecl{
		Type:      javaTypeName(node.ChildByFieldName("type"), src),
		Modifiers: []string{},
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case javaModifiers:
			field.Modifiers = javaModifierSet(child, src)
		case javaVarDeclarator:
			if name := child.ChildByFieldName("name"); name != nil {
				field.Names = append(field.Names, name.Content(src))
			}
		}
	}
	return field
}

func javaMethod(node *sitter.Node, src []byte) MethodDecl {
	method := MethodDecl{
		ReturnType: javaTypeName(node.ChildByFieldName("type"), src),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		method.Name = name.Content(src)
	}
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return method
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		switch param.Type() {
		case javaFormalParam:
			p := Param{Type: javaTypeName(param.ChildByFieldName("type"), src)}
			if name := param.ChildByFieldName("name"); name != nil {
				p.Name = name.Content(src)
			}
			method.Params = append(method.Params, p)
		case javaSpreadParam:
			method.Params = append(method.Params, javaSpread(param, src))
		}
	}
	return method
}

// javaSpread handles varargs (String... args), whose type and name are plain
// children rather than named fields.
func javaSpread(node *sitter.Node, src []byte) Param {
	var p Param
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case javaModifiers:
		case javaVarDeclarator:
			if name := child.ChildByFieldName("name"); name != nil {
				p.Name = name.Content(src)
			}
		default:
			if p.Type == "" {
				p.Type = javaTypeName(child, src)
			}
		}
	}
	return p
}

func javaModifierSet(node *sitter.Node, src []byte) []string {
	mods := []string{}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case javaMarkerAnnot, javaAnnotation:
			continue
		}
		mods = append(mods, child.Content(src))
	}
	return mods
}

func javaTypeName(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case javaGenericType:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() != "type_arguments" {
				return javaTypeName(child, src)
			}
		}
	case javaArrayType:
		return javaTypeName(node.ChildByFieldName("element"), src)
	case javaAnnotatedType:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case javaMarkerAnnot, javaAnnotation:
				continue
			}
			return javaTypeName(child, src)
		}
	case javaTypeIdentifier:
		return node.Content(src)
	}
	return strings.Join(strings.Fields(node.Content(src)), "")
}

func firstErrorLine(node *sitter.Node) uint32 {
	if node.IsError() || node.IsMissing() {
		return node.StartPoint().Row + 1
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstErrorLine(child)
		}
	}
	return node.StartPoint().Row + 1
}
