package generator

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/tools/go/packages"
)

// basicKindNames maps integer kinds to the names used in descriptors. byte
// and rune resolve to uint8 and int32.
var basicKindNames = map[types.BasicKind]string{
	types.Int:     "int",
	types.Int8:    "int8",
	types.Int16:   "int16",
	types.Int32:   "int32",
	types.Int64:   "int64",
	types.Uint:    "uint",
	types.Uint8:   "uint8",
	types.Uint16:  "uint16",
	types.Uint32:  "uint32",
	types.Uint64:  "uint64",
	types.Uintptr: "uintptr",
}

// loadDir loads the Go package(s) for a directory.
func loadDir(dir string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./")
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	var result []*packages.Package
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return nil, p.Errors[0]
		}
		result = append(result, p)
	}
	return result, nil
}

// constant is a package-level constant in declaration order.
type constant struct {
	obj   *types.Const
	label *string
}

// packageScan is everything discovery needs from one package's syntax.
type packageScan struct {
	types     map[string]typeDirectives
	marked    []string
	constants []constant
}

// discoverAll loads cfg.Dir and builds a validated descriptor for every
// selected enum. It also returns the absolute directory that was loaded.
func (g *generator) discoverAll(cfg Config) ([]Descriptor, string, error) {
	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, "", err
	}
	g.log.Debug("loading package", slog.String("dir", absDir), slog.String("version", cfg.Version))
	if cfg.ConfigFile != "" {
		fc, err := LoadConfigFile(cfg.ConfigFile)
		if err != nil {
			return nil, "", err
		}
		g.file = fc
	}
	pkgs, err := loadDir(absDir)
	if err != nil {
		return nil, "", err
	}
	if len(pkgs) == 0 {
		return nil, "", fmt.Errorf("no packages found in %s", absDir)
	}
	pkg := pkgs[0]

	scan, err := scanPackage(pkg)
	if err != nil {
		return nil, "", err
	}

	seen := map[string]bool{}
	var names []string
	names = appendUnique(names, seen, cfg.Types...)
	if g.file != nil {
		for _, tc := range g.file.Types {
			names = appendUnique(names, seen, tc.Name)
		}
	}
	names = appendUnique(names, seen, scan.marked...)
	if len(names) == 0 {
		return nil, "", errors.New("no enum types selected; pass -type or mark a type with //enumgen:extensions")
	}

	outPkg := cfg.Package
	if outPkg == "" && g.file != nil {
		outPkg = g.file.Package
	}
	if outPkg == "" {
		outPkg = pkg.Name
	}

	var descs []Descriptor
	var errs error
	for _, name := range names {
		d, err := g.buildDescriptor(pkg, scan, name, outPkg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := d.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		descs = append(descs, d)
	}
	if errs != nil {
		return nil, "", errs
	}
	return descs, absDir, nil
}

// scanPackage walks the package syntax in file order, collecting directives
// and package-level constants.
func scanPackage(pkg *packages.Package) (*packageScan, error) {
	files := append([]*ast.File(nil), pkg.Syntax...)
	sort.SliceStable(files, func(i, j int) bool {
		return pkg.Fset.Position(files[i].Pos()).Filename < pkg.Fset.Position(files[j].Pos()).Filename
	})

	scan := &packageScan{types: make(map[string]typeDirectives)}
	for _, f := range files {
		fd, err := parseFileDirectives(pkg.Fset, f)
		if err != nil {
			return nil, err
		}
		for name, td := range fd.Types {
			scan.types[name] = td
		}
		scan.marked = append(scan.marked, fd.Marked...)

		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			for _, spec := range gd.Specs {
				vs := spec.(*ast.ValueSpec)
				for _, ident := range vs.Names {
					if ident.Name == "_" {
						continue
					}
					obj, ok := pkg.TypesInfo.Defs[ident].(*types.Const)
					if !ok {
						continue
					}
					c := constant{obj: obj}
					if label, ok := fd.Labels[ident]; ok {
						c.label = &label
					}
					scan.constants = append(scan.constants, c)
				}
			}
		}
	}
	return scan, nil
}

// buildDescriptor constructs the descriptor for a single enum type.
func (g *generator) buildDescriptor(pkg *packages.Package, scan *packageScan, name, outPkg string) (Descriptor, error) {
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return Descriptor{}, fmt.Errorf("type %s not found in %s", name, pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok || tn.IsAlias() {
		return Descriptor{}, fmt.Errorf("%s is not a defined type", name)
	}
	basic, ok := tn.Type().Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsInteger == 0 {
		return Descriptor{}, fmt.Errorf("%s is not an integer type", name)
	}
	underlying, ok := basicKindNames[basic.Kind()]
	if !ok {
		return Descriptor{}, fmt.Errorf("%s: %w", name, ErrUnsupportedType)
	}

	external := outPkg != pkg.Name
	if external && !tn.Exported() {
		return Descriptor{}, fmt.Errorf("unexported type %s cannot be referenced from package %s", name, outPkg)
	}

	td := scan.types[name]
	tc, hasConfig := g.file.typeConfig(name)

	d := Descriptor{
		Name:                   name,
		Extensions:             td.Extensions,
		Namespace:              outPkg,
		FullyQualifiedTypeName: name,
		IsPublic:               tn.Exported(),
		HasFlagsSemantics:      td.Flags,
		UnderlyingIntegerType:  underlying,
	}
	if external {
		d.FullyQualifiedTypeName = pkg.Name + "." + name
		d.ImportPath = pkg.PkgPath
	}
	if hasConfig {
		if tc.Extensions != "" {
			d.Extensions = tc.Extensions
		}
		d.HasFlagsSemantics = d.HasFlagsSemantics || tc.Flags
	}

	keys := map[string]bool{}
	for _, c := range scan.constants {
		if !types.Identical(c.obj.Type(), tn.Type()) {
			continue
		}
		if external && !c.obj.Exported() {
			g.log.Warn("skipping unexported constant",
				slog.String("type", name),
				slog.String("constant", c.obj.Name()),
			)
			continue
		}
		m := Member{Key: c.obj.Name(), Label: c.label}
		if label, ok := tc.Labels[m.Key]; ok && hasConfig {
			m.Label = &label
		}
		if m.Label != nil {
			d.UsesAlternateLabels = true
		}
		keys[m.Key] = true
		d.Members = append(d.Members, m)
	}

	var unknown []string
	for key := range tc.Labels {
		if !keys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Descriptor{}, fmt.Errorf("%s: labels configured for unknown constants: %s", name, strings.Join(unknown, ", "))
	}
	return d, nil
}
