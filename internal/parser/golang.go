package parser

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

var errNoTypes = errors.New("no type information")

// goParser treats every named struct type of a Go module as a class. The first
// embedded struct is the parent; exported members are public, the rest
// private. Go has no final marker, so Go sources never yield composition.
type goParser struct {
	opts Options
}

// NewGo returns a Parser that loads every package below root with go/packages.
// Each package is one unit: a package with errors is reported and skipped.
func NewGo(opts ...Option) Parser {
	return &goParser{opts: buildOptions(opts)}
}

func (p *goParser) Parse(ctx context.Context, root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	cfg := &packages.Config{
		Context: ctx,
		Dir:     abs,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedTypes |
			packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	slices.SortFunc(pkgs, func(a, b *packages.Package) int {
		return strings.Compare(a.PkgPath, b.PkgPath)
	})

	res := &Result{}
	for _, pkg := range pkgs {
		if p.excluded(abs, pkg) {
			continue
		}
		decls, f := goPackageUnit(pkg)
		if f != nil {
			res.Failures = append(res.Failures, f)
			p.opts.Logger.Warn("skipping unit", zap.String("unit", f.Unit), zap.Error(f.Err))
			continue
		}
		res.Declarations = append(res.Declarations, decls...)
	}
	return res, nil
}

// excluded reports whether pkg sits in a directory below root whose name is
// excluded. Only path elements relative to root are matched.
func (p *goParser) excluded(root string, pkg *packages.Package) bool {
	if len(pkg.GoFiles) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, filepath.Dir(pkg.GoFiles[0]))
	if err != nil || rel == "." {
		return false
	}
	for _, elem := range strings.Split(rel, string(filepath.Separator)) {
		if slices.Contains(p.opts.Exclude, elem) {
			return true
		}
	}
	return false
}

// goPackageUnit returns the declarations of one package, or the reason the
// package has to be skipped.
func goPackageUnit(pkg *packages.Package) ([]Declaration, *UnitError) {
	if len(pkg.Errors) > 0 {
		return nil, &UnitError{Unit: pkg.PkgPath, Err: pkg.Errors[0]}
	}
	if pkg.Types == nil {
		return nil, &UnitError{Unit: pkg.PkgPath, Err: errNoTypes}
	}
	return goPackageDecls(pkg.Types), nil
}

func goPackageDecls(pkg *types.Package) []Declaration {
	scope := pkg.Scope()
	var decls []Declaration
	// Names is sorted, which fixes declaration order within a package.
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}
		decls = append(decls, goStructDecl(named, st))
	}
	return decls
}

func goStructDecl(named *types.Named, st *types.Struct) Declaration {
	decl := Declaration{Name: named.Obj().Name()}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() {
			if decl.Parent == "" && isStruct(f.Type()) {
				decl.Parent = goTypeName(f.Type())
			}
			continue
		}
		decl.Fields = append(decl.Fields, FieldDecl{
			Names:     []string{f.Name()},
			Type:      goTypeName(f.Type()),
			Modifiers: []string{goVisibility(f.Name())},
		})
	}
	for i := 0; i < named.NumMethods(); i++ {
		decl.Methods = append(decl.Methods, goMethodDecl(named.Method(i)))
	}
	return decl
}

func goMethodDecl(fn *types.Func) MethodDecl {
	sig := fn.Type().(*types.Signature)
	m := MethodDecl{Name: fn.Name()}
	for i := 0; i < sig.Params().Len(); i++ {
		v := sig.Params().At(i)
		t := v.Type()
		typeName := goTypeName(t)
		if sig.Variadic() && i == sig.Params().Len()-1 {
			if s, ok := t.(*types.Slice); ok {
				typeName = goTypeName(s.Elem())
			}
		}
		m.Params = append(m.Params, Param{Name: v.Name(), Type: typeName})
	}
	switch results := sig.Results(); results.Len() {
	case 0:
	case 1:
		m.ReturnType = goTypeName(results.At(0).Type())
	default:
		parts := make([]string, 0, results.Len())
		for i := 0; i < results.Len(); i++ {
			parts = append(parts, goTypeName(results.At(i).Type()))
		}
		m.ReturnType = "(" + strings.Join(parts, ", ") + ")"
	}
	return m
}

// goTypeName reduces a type to the name a class map can be keyed by: pointer,
// slice, array and channel wrappers are dropped and named types lose their
// package qualifier.
func goTypeName(t types.Type) string {
	switch v := t.(type) {
	case *types.Alias:
		return goTypeName(types.Unalias(v))
	case *types.Pointer:
		return goTypeName(v.Elem())
	case *types.Slice:
		return goTypeName(v.Elem())
	case *types.Array:
		return goTypeName(v.Elem())
	case *types.Chan:
		return goTypeName(v.Elem())
	case *types.Named:
		return v.Obj().Name()
	case *types.Basic:
		return v.Name()
	default:
		return types.TypeString(t, func(*types.Package) string { return "" })
	}
}

func isStruct(t types.Type) bool {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	_, ok := types.Unalias(t).Underlying().(*types.Struct)
	return ok
}

func goVisibility(name string) string {
	if token.IsExported(name) {
		return "public"
	}
	return "private"
}
