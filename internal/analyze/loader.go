package analyze

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/types"
	"log/slog"
	"slices"

	"golang.org/x/tools/go/packages"

	"entity-extractor/internal/descriptor"
	"entity-extractor/internal/diagnostic"
	"entity-extractor/internal/match"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DefaultPatterns are loaded when no pattern is given.
var DefaultPatterns = []string{"./..."}

// maxSuggestions bounds the "did you mean" list of a NamespaceNotFoundError.
const maxSuggestions = 3

// Analyzer loads Go packages and reduces their named types to type
// descriptors: structs become classes, named basic types with constants
// become enums.
type Analyzer struct {
	dir      string
	logger   *slog.Logger
	diags    diagnostic.Diagnostics
	packages map[string]*PackageInfo
	enums    map[*types.TypeName][]string // Cache of enum members per named type
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.reset()

	return a
}

func (a *Analyzer) reset() {
	a.diags = diagnostic.Diagnostics{}
	a.packages = make(map[string]*PackageInfo)
	a.enums = make(map[*types.TypeName][]string)
}

// LoadModule loads the packages matched by patterns and describes every
// exported struct and enum they declare. Packages are visited in import
// path order, types in declaration order.
func (a *Analyzer) LoadModule(ctx context.Context, patterns ...string) ([]descriptor.TypeDescriptor, error) {
	pkgs, err := a.load(ctx, patterns)
	if err != nil {
		return nil, err
	}

	var descs []descriptor.TypeDescriptor
	for _, pkg := range pkgs {
		descs = append(descs, a.describePackage(pkg.Types)...)
	}

	return descs, nil
}

// LoadNamespace loads the packages matched by patterns and describes the
// types of the single package whose import path is namespace. The package
// may be one of the matched packages or any package they import, directly
// or not.
func (a *Analyzer) LoadNamespace(ctx context.Context, namespace string, patterns ...string) ([]descriptor.TypeDescriptor, error) {
	pkgs, err := a.load(ctx, patterns)
	if err != nil {
		return nil, err
	}

	var (
		descs []descriptor.TypeDescriptor
		known []string
	)

	for _, tp := range visiblePackages(pkgs) {
		if tp.Path() != namespace {
			known = append(known, tp.Path())
			continue
		}

		descs = append(descs, a.describePackage(tp)...)
	}

	if len(descs) == 0 {
		return nil, &NamespaceNotFoundError{
			Namespace:   namespace,
			Suggestions: match.Suggest(namespace, known, maxSuggestions),
		}
	}

	return descs, nil
}

// Diagnostics returns what the last load reported about skipped types and
// opaque field types.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diags
}

// Package returns information about a described package, or nil.
func (a *Analyzer) Package(path string) *PackageInfo {
	return a.packages[path]
}

// load runs packages.Load and fails on any package error.
func (a *Analyzer) load(ctx context.Context, patterns []string) ([]*packages.Package, error) {
	a.reset()

	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, &ModuleLoadError{Patterns: patterns, Err: err}
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, &ModuleLoadError{Patterns: patterns, Err: fmt.Errorf("package errors: %w", errors.Join(errs...))}
	}

	if len(pkgs) == 0 {
		return nil, &ModuleLoadError{Patterns: patterns, Err: errors.New("no packages matched")}
	}

	slices.SortFunc(pkgs, func(x, y *packages.Package) int {
		return cmp.Compare(x.PkgPath, y.PkgPath)
	})

	a.logger.Debug("loaded packages", "patterns", patterns, "count", len(pkgs))

	return pkgs, nil
}

// visiblePackages returns the loaded packages followed by everything they
// import, transitively, each once.
func visiblePackages(pkgs []*packages.Package) []*types.Package {
	var (
		out  []*types.Package
		seen = make(map[string]bool)
	)

	var visit func(tp *types.Package)
	visit = func(tp *types.Package) {
		if tp == nil || seen[tp.Path()] {
			return
		}

		seen[tp.Path()] = true
		out = append(out, tp)

		for _, imp := range tp.Imports() {
			visit(imp)
		}
	}

	for _, pkg := range pkgs {
		if pkg.Types != nil && !seen[pkg.PkgPath] {
			seen[pkg.PkgPath] = true
			out = append(out, pkg.Types)
		}
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}

		for _, imp := range pkg.Types.Imports() {
			visit(imp)
		}
	}

	return out
}

// describePackage describes the exported named types of a package in
// declaration order.
func (a *Analyzer) describePackage(tp *types.Package) []descriptor.TypeDescriptor {
	scope := tp.Scope()

	var objs []*types.TypeName
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() {
			continue
		}

		objs = append(objs, obj)
	}

	slices.SortStableFunc(objs, byPos[*types.TypeName])

	info := &PackageInfo{
		Path: tp.Path(),
		Name: tp.Name(),
	}

	var descs []descriptor.TypeDescriptor
	for _, obj := range objs {
		d, ok := a.describeTypeName(obj)
		if !ok {
			continue
		}

		descs = append(descs, d)
		info.Types = append(info.Types, d.Name)
	}

	a.packages[tp.Path()] = info
	a.logger.Debug("described package", "path", tp.Path(), "types", len(descs))

	return descs
}

// describeTypeName describes a struct as a class and an enum-shaped named
// basic type as an enum. Everything else is skipped.
func (a *Analyzer) describeTypeName(obj *types.TypeName) (descriptor.TypeDescriptor, bool) {
	d := descriptor.TypeDescriptor{
		Name:      obj.Name(),
		Namespace: obj.Pkg().Path(),
	}

	if obj.IsAlias() {
		a.diags.AddInfo("alias_skipped", "type alias is not described", obj.Name(), "")
		return d, false
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return d, false
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		d.Kind = descriptor.KindClass
		seen := map[*types.Named]bool{named: true}
		d.BaseTypeName, d.Properties = a.describeStruct(ut, NewTypePath(obj.Name()), seen)

		return d, true

	case *types.Basic:
		if members := a.enumMembers(named); len(members) > 0 {
			d.Kind = descriptor.KindEnum
			d.MemberNames = members

			return d, true
		}
	}

	a.diags.AddInfo("type_skipped",
		fmt.Sprintf("%s type is neither a struct nor an enum", a.kindOf(named)), obj.Name(), "")

	return d, false
}

// describeStruct returns the base type name and the properties of a struct.
// The first exported embedded struct is the base type. Exported fields of
// every embedded struct are promoted in place unless shadowed by a field
// declared directly.
func (a *Analyzer) describeStruct(
	st *types.Struct,
	path *TypePath,
	seen map[*types.Named]bool,
) (string, []descriptor.Property) {
	direct := make(map[string]bool)
	for i := 0; i < st.NumFields(); i++ {
		if f := st.Field(i); !f.Embedded() {
			direct[f.Name()] = true
		}
	}

	var (
		base  string
		props []descriptor.Property
	)

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		if field.Embedded() {
			if named, embedded := embeddedStruct(field.Type()); embedded != nil && !seen[named] {
				seen[named] = true

				if base == "" && named.Obj().Exported() {
					base = named.Obj().Name()
				}

				_, promoted := a.describeStruct(embedded, path, seen)
				for _, p := range promoted {
					if !direct[p.Name] {
						props = append(props, p)
					}
				}

				continue
			}
		}

		if !field.Exported() {
			continue
		}

		props = append(props, a.describeField(field.Name(), field.Type(), path.Field(field.Name())))
	}

	return base, props
}

// embeddedStruct returns the named struct behind an embedded field type.
func embeddedStruct(t types.Type) (*types.Named, *types.Struct) {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return nil, nil
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, nil
	}

	return named, st
}

// describeField reduces a field type to a property.
func (a *Analyzer) describeField(name string, t types.Type, path *TypePath) descriptor.Property {
	p := descriptor.Property{Name: name}

	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
		p.IsNullable = true
	}

	switch tt := t.(type) {
	case *types.Slice:
		p.DeclaredTypeName = typeString(tt)
		if isByte(tt.Elem()) {
			return p
		}

		elem := types.Unalias(tt.Elem())
		if ptr, ok := elem.(*types.Pointer); ok {
			elem = types.Unalias(ptr.Elem())
		}

		switch elem.(type) {
		case *types.Slice, *types.Array, *types.Map:
			a.diags.AddInfo("nested_collection",
				fmt.Sprintf("%s is not a single-level collection", p.DeclaredTypeName), path.Root(), path.String())

			return p
		}

		p.IsCollection = true
		p.ElementTypeName = simpleName(elem)

		return p

	case *types.Named:
		p.DeclaredTypeName = tt.Obj().Name()
		p.IsEnum = a.isEnum(tt)

		return p

	case *types.Basic:
		p.DeclaredTypeName = tt.Name()
		return p

	case *types.TypeParam:
		p.DeclaredTypeName = tt.Obj().Name()
		return p
	}

	p.DeclaredTypeName = typeString(t)
	a.diags.AddInfo("opaque_field_type",
		fmt.Sprintf("%s field rendered as %s", a.kindOf(t), p.DeclaredTypeName), path.Root(), path.String())

	return p
}

// isEnum returns true if named is a basic type with at least one exported
// constant of that type in its package.
func (a *Analyzer) isEnum(named *types.Named) bool {
	return len(a.enumMembers(named)) > 0
}

// enumMembers returns the exported constants of type named, in declaration
// order. Imported packages are covered too, through their scope.
func (a *Analyzer) enumMembers(named *types.Named) []string {
	obj := named.Obj()
	if members, ok := a.enums[obj]; ok {
		return members
	}

	var members []string

	basic, ok := named.Underlying().(*types.Basic)
	if ok && basic.Info()&(types.IsInteger|types.IsString) != 0 && obj.Pkg() != nil {
		scope := obj.Pkg().Scope()

		var consts []*types.Const
		for _, name := range scope.Names() {
			c, ok := scope.Lookup(name).(*types.Const)
			if !ok || !c.Exported() || !types.Identical(c.Type(), named) {
				continue
			}

			consts = append(consts, c)
		}

		slices.SortStableFunc(consts, byPos[*types.Const])

		for _, c := range consts {
			members = append(members, c.Name())
		}
	}

	a.enums[obj] = members

	return members
}

// simpleName returns the unqualified name of a named, basic or type
// parameter type, or "" for anything else.
func simpleName(t types.Type) string {
	switch tt := t.(type) {
	case *types.Named:
		return tt.Obj().Name()
	case *types.Basic:
		return tt.Name()
	case *types.TypeParam:
		return tt.Obj().Name()
	default:
		return ""
	}
}

// typeString formats t qualifying named types by package name.
func typeString(t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string {
		return p.Name()
	})
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Byte
}

func byPos[T types.Object](x, y T) int {
	return cmp.Compare(x.Pos(), y.Pos())
}
