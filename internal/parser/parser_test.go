package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/tools/go/packages"
)

func TestJavaParse_Tree(t *testing.T) {
	p := NewJava(WithLogger(zaptest.NewLogger(t)))

	res, err := p.Parse(context.Background(), "../../testdata/javazoo")
	require.NoError(t, err)
	assert.Empty(t, res.Failures)

	// animals/Animal.java, animals/Dog.java, gear/Leash.java (Leash, Clip).
	names := declNames(res.Declarations)
	assert.Equal(t, []string{"Animal", "Dog", "Leash", "Clip"}, names)

	dog := declByName(res.Declarations, "Dog")
	require.NotNil(t, dog)
	assert.Equal(t, "Animal", dog.Parent)

	require.Len(t, dog.Fields, 3)
	assert.Equal(t, []string{"owner"}, dog.Fields[0].Names)
	assert.Equal(t, "Person", dog.Fields[0].Type)
	assert.Equal(t, []string{"private"}, dog.Fields[0].Modifiers)
	assert.Equal(t, "Leash", dog.Fields[1].Type)
	assert.ElementsMatch(t, []string{"private", "final"}, dog.Fields[1].Modifiers)
	assert.Equal(t, []string{"x", "y"}, dog.Fields[2].Names)
	assert.Equal(t, "int", dog.Fields[2].Type)

	// Constructors are not methods.
	require.Len(t, dog.Methods, 2)
	assert.Equal(t, "walk", dog.Methods[0].Name)
	assert.Equal(t, "void", dog.Methods[0].ReturnType)
	assert.Equal(t, []Param{{Name: "with", Type: "Leash"}, {Name: "minutes", Type: "int"}}, dog.Methods[0].Params)
	assert.Equal(t, "String", dog.Methods[1].ReturnType)

	clip := declByName(res.Declarations, "Clip")
	require.NotNil(t, clip)
	require.Len(t, clip.Fields, 1)
	assert.Equal(t, []string{"private"}, clip.Fields[0].Modifiers)
	leash := declByName(res.Declarations, "Leash")
	require.NotNil(t, leash)
	assert.Len(t, leash.Fields, 1, "nested class fields must not leak into the outer class")
}

func TestJavaParse_SkipsBrokenUnit(t *testing.T) {
	p := NewJava(WithLogger(zaptest.NewLogger(t)))

	res, err := p.Parse(context.Background(), "../../testdata/javabroken")
	require.NoError(t, err)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, filepath.Join("../../testdata/javabroken", "Broken.java"), res.Failures[0].Unit)
	assert.True(t, errors.Is(res.Failures[0], ErrSyntax))
	assert.Equal(t, []string{"Ok"}, declNames(res.Declarations))
}

func TestJavaParse_MissingRootIsFatal(t *testing.T) {
	p := NewJava()

	_, err := p.Parse(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestJavaParse_LexicographicMergeOrder(t *testing.T) {
	for _, workers := range []int{1, 8} {
		p := NewJava(WithWorkers(workers))

		res, err := p.Parse(context.Background(), "../../testdata/javadup")
		require.NoError(t, err)
		require.Len(t, res.Declarations, 2)
		assert.Equal(t, "first", res.Declarations[0].Fields[0].Names[0])
		assert.Equal(t, "second", res.Declarations[1].Fields[0].Names[0])
	}
}

func TestJavaParse_Exclude(t *testing.T) {
	p := NewJava(WithExclude("gear"))

	res, err := p.Parse(context.Background(), "../../testdata/javazoo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Animal", "Dog"}, declNames(res.Declarations))
}

func TestJavaParse_PackageNamedLikeBuildDir(t *testing.T) {
	p := NewJava()

	res, err := p.Parse(context.Background(), "../../testdata/javabuild")
	require.NoError(t, err)
	assert.Empty(t, res.Failures)
	assert.Equal(t, []string{"Builder", "App"}, declNames(res.Declarations))
}

func TestJavaParseFile_TypeShapes(t *testing.T) {
	src := `
public class Kennel<T> extends Building<T> {
    private final List<Dog> dogs;
    Dog[] spare;
    protected java.util.Map<String, Dog> byName;
    @Deprecated private Leash old;

    public List<Dog> all(Dog first, Dog... rest) { return dogs; }
    abstract int size();
}
`
	decls, err := (&JavaParser{}).ParseFile(context.Background(), "Kennel.java", []byte(src))
	require.NoError(t, err)
	require.Len(t, decls, 1)

	k := decls[0]
	assert.Equal(t, "Kennel", k.Name)
	assert.Equal(t, "Building", k.Parent)

	types := make([]string, 0, len(k.Fields))
	for _, f := range k.Fields {
		types = append(types, f.Type)
	}
	assert.Equal(t, []string{"List", "Dog", "java.util.Map", "Leash"}, types)
	assert.Equal(t, []string{}, k.Fields[1].Modifiers)
	assert.Equal(t, []string{"private"}, k.Fields[3].Modifiers)

	require.Len(t, k.Methods, 2)
	assert.Equal(t, "List", k.Methods[0].ReturnType)
	assert.Equal(t, []Param{{Name: "first", Type: "Dog"}, {Name: "rest", Type: "Dog"}}, k.Methods[0].Params)
	assert.Equal(t, "int", k.Methods[1].ReturnType)
	assert.Empty(t, k.Methods[1].Params)
}

func TestGoParse_Structs(t *testing.T) {
	p := NewGo(WithLogger(zaptest.NewLogger(t)))

	res, err := p.Parse(context.Background(), "../../testdata/goshapes")
	require.NoError(t, err)
	assert.Empty(t, res.Failures)

	// Celsius is not a struct.
	assert.Equal(t, []string{"Base", "Dog", "Leash", "Owner", "Tool"}, declNames(res.Declarations))

	dog := declByName(res.Declarations, "Dog")
	require.NotNil(t, dog)
	assert.Equal(t, "Base", dog.Parent)

	fields := map[string]FieldDecl{}
	for _, f := range dog.Fields {
		fields[f.Names[0]] = f
	}
	require.Len(t, fields, 4, "embedded Base is the parent, not a field")
	assert.Equal(t, "Owner", fields["Owner"].Type)
	assert.Equal(t, []string{"public"}, fields["Owner"].Modifiers)
	assert.Equal(t, "Leash", fields["leash"].Type)
	assert.Equal(t, []string{"private"}, fields["leash"].Modifiers)
	assert.Equal(t, "string", fields["Tags"].Type)

	methods := map[string]MethodDecl{}
	for _, m := range dog.Methods {
		methods[m.Name] = m
	}
	require.Contains(t, methods, "Walk")
	require.Contains(t, methods, "Bark")
	assert.Equal(t, "error", methods["Walk"].ReturnType)
	assert.Equal(t, []Param{{Name: "with", Type: "Owner"}, {Name: "minutes", Type: "int"}}, methods["Walk"].Params)
	assert.Equal(t, "", methods["Bark"].ReturnType)

	owner := declByName(res.Declarations, "Owner")
	require.NotNil(t, owner)
	require.Len(t, owner.Methods, 1)
	assert.Equal(t, "(int, error)", owner.Methods[0].ReturnType)
	assert.Equal(t, []Param{{Name: "dogs", Type: "Dog"}}, owner.Methods[0].Params)
}

func TestGoParse_ExcludeIsRelativeToRoot(t *testing.T) {
	res, err := NewGo(WithExclude("build")).Parse(context.Background(), "../../testdata/goshapes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Dog", "Leash", "Owner"}, declNames(res.Declarations))

	// testdata and goshapes are above or at the root and never match.
	res, err = NewGo(WithExclude("testdata", "goshapes")).Parse(context.Background(), "../../testdata/goshapes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Dog", "Leash", "Owner", "Tool"}, declNames(res.Declarations))
}

func TestGoPackageUnit_Failures(t *testing.T) {
	decls, f := goPackageUnit(&packages.Package{PkgPath: "example.com/untyped"})
	assert.Empty(t, decls)
	require.NotNil(t, f)
	assert.Equal(t, "example.com/untyped", f.Unit)
	assert.ErrorIs(t, f, errNoTypes)

	_, f = goPackageUnit(&packages.Package{
		PkgPath: "example.com/broken",
		Errors:  []packages.Error{{Msg: "undefined: Leash"}},
	})
	require.NotNil(t, f)
	assert.Contains(t, f.Error(), "undefined: Leash")
}

func TestUnitError_Unwrap(t *testing.T) {
	err := &UnitError{Unit: "A.java", Err: ErrSyntax}
	assert.Equal(t, "A.java: syntax error", err.Error())
	assert.ErrorIs(t, err, ErrSyntax)
}

func declNames(decls []Declaration) []string {
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Name)
	}
	return out
}

func declByName(decls []Declaration, name string) *Declaration {
	for i := range decls {
		if decls[i].Name == name {
			return &decls[i]
		}
	}
	return nil
}
