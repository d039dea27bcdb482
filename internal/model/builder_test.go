package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/gen-uml/internal/parser"
)

func TestBuild_OneFieldPerDeclarator(t *testing.T) {
	res := Build([]parser.Declaration{{
		Name: "Point",
		Fields: []parser.FieldDecl{
			{Names: []string{"x", "y", "z"}, Type: "int", Modifiers: []string{"private", "final"}},
			{Names: []string{"label"}, Type: "String"},
		},
	}})

	c, ok := res.Classes.Get("Point")
	require.True(t, ok)
	require.Len(t, c.Fields, 4)
	for i, name := range []string{"x", "y", "z"} {
		assert.Equal(t, name, c.Fields[i].Name)
		assert.Equal(t, "int", c.Fields[i].Type)
		assert.True(t, c.Fields[i].Modifiers.Has("private", "final"))
	}
	assert.Equal(t, "label", c.Fields[3].Name)
	assert.False(t, c.Fields[3].Modifiers.Has("private"))
}

func TestBuild_VoidReturnDefault(t *testing.T) {
	res := Build([]parser.Declaration{{
		Name: "Animal",
		Methods: []parser.MethodDecl{
			{Name: "speak"},
			{Name: "name", ReturnType: "String"},
			{Name: "feed", Params: []parser.Param{{Name: "food", Type: "Food"}, {Name: "grams", Type: "int"}}},
		},
	}})

	c, _ := res.Classes.Get("Animal")
	require.Len(t, c.Methods, 3)
	assert.Equal(t, Void, c.Methods[0].ReturnType)
	assert.Equal(t, "String", c.Methods[1].ReturnType)
	assert.Equal(t, []ParameterModel{{Name: "food", Type: "Food"}, {Name: "grams", Type: "int"}}, c.Methods[2].Params)
}

func TestBuild_UnresolvedParentStillRecorded(t *testing.T) {
	res := Build([]parser.Declaration{{Name: "Dog", Parent: "Animal"}})

	assert.Equal(t, []InheritancePair{{Child: "Dog", Parent: "Animal"}}, res.Inheritance)
	assert.False(t, res.Classes.Has("Animal"))
	c, _ := res.Classes.Get("Dog")
	assert.Equal(t, "Animal", c.Parent)
}

func TestBuild_DuplicateNameLastWriteWins(t *testing.T) {
	res := Build([]parser.Declaration{
		{Name: "Thing", Parent: "Old", Fields: []parser.FieldDecl{{Names: []string{"first"}, Type: "String"}}},
		{Name: "Other"},
		{Name: "Thing", Parent: "Base", Fields: []parser.FieldDecl{{Names: []string{"second"}, Type: "int"}},
			Methods: []parser.MethodDecl{{Name: "touch"}}},
	})

	assert.Equal(t, []string{"Thing", "Other"}, res.Classes.Names())
	assert.Equal(t, []string{"Thing"}, res.Overwritten)

	c, _ := res.Classes.Get("Thing")
	require.Len(t, c.Fields, 1)
	assert.Equal(t, "second", c.Fields[0].Name)
	require.Len(t, c.Methods, 1)
	assert.Equal(t, "Base", c.Parent)
	assert.Equal(t, []InheritancePair{
		{Child: "Thing", Parent: "Old"},
		{Child: "Thing", Parent: "Base"},
	}, res.Inheritance)
}

func TestBuild_ReplacedDeclarationKeepsInheritancePair(t *testing.T) {
	res := Build([]parser.Declaration{
		{Name: "Thing", Parent: "Old"},
		{Name: "Thing"},
	})

	c, ok := res.Classes.Get("Thing")
	require.True(t, ok)
	assert.Empty(t, c.Parent)
	assert.Equal(t, []InheritancePair{{Child: "Thing", Parent: "Old"}}, res.Inheritance)
}

func TestClassMap_Each(t *testing.T) {
	m := NewClassMap()
	m.Put(&ClassModel{Name: "B"})
	m.Put(&ClassModel{Name: "A"})
	assert.False(t, m.Put(&ClassModel{Name: "C"}))
	assert.True(t, m.Put(&ClassModel{Name: "B", Parent: "A"}))

	var seen []string
	m.Each(func(c *ClassModel) { seen = append(seen, c.Name+":"+c.Parent) })
	assert.Equal(t, []string{"B:A", "A:", "C:"}, seen)
	assert.Equal(t, 3, m.Len())
}
