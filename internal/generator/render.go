package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// run orchestrates discovery, validation, rendering, and file emission.
func (g *generator) run(cfg Config) error {
	descs, absDir, err := g.discoverAll(cfg)
	if err != nil {
		return err
	}
	output := cfg.Output
	if output == "" && g.file != nil {
		output = g.file.Output
	}
	if output != "" && len(descs) != 1 {
		return fmt.Errorf("output %q requires exactly one type, found %d", output, len(descs))
	}

	paths := make([]string, len(descs))
	for i, d := range descs {
		name := output
		if name == "" {
			name = defaultOutputName(d.Name)
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(absDir, name)
		}
		// A file for another package cannot sit next to the enum's own sources.
		if d.ImportPath != "" && filepath.Dir(name) == absDir {
			return fmt.Errorf("%s: package %s needs an output path outside %s", d.Name, d.Namespace, absDir)
		}
		paths[i] = name
	}

	var eg errgroup.Group
	for i, d := range descs {
		i, d := i, d
		eg.Go(func() error {
			if err := os.WriteFile(paths[i], []byte(Render(d)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", d.Name, err)
			}
			g.log.Info("generated enum helpers",
				slog.String("type", d.Name),
				slog.String("file", paths[i]),
				slog.Int("members", len(d.Members)),
			)
			return nil
		})
	}
	return eg.Wait()
}

// Render returns the source text of the companion file for d. The result
// depends only on d. Descriptors are expected to satisfy Validate.
func Render(d Descriptor) string {
	if err := ensureTemplates(); err != nil {
		panic(fmt.Sprintf("enumgen: embedded templates: %v", err))
	}
	var out bytes.Buffer
	if err := fileTmpl.ExecuteTemplate(&out, tmplFile, newFileModel(d)); err != nil {
		panic(fmt.Sprintf("enumgen: render %s: %v", d.Name, err))
	}
	formatted, err := format.Source(out.Bytes())
	if err != nil {
		formatted = out.Bytes()
	}
	return string(formatted)
}

// CompanionName returns the name of the generated companion type, exported
// only when the enum itself is.
func (d Descriptor) CompanionName() string {
	name := d.Extensions
	if name == "" {
		name = d.Name + "Extensions"
	}
	if d.IsPublic {
		return upperFirst(name)
	}
	return lowerFirst(name)
}

func newFileModel(d Descriptor) fileModel {
	kind := integerKinds[d.UnderlyingIntegerType]
	pkg := d.Namespace
	if pkg == "" {
		pkg = "main"
	}
	fm := fileModel{
		Package:   pkg,
		Import:    d.ImportPath,
		Companion: d.CompanionName(),
		TypeName:  d.FullyQualifiedTypeName,
		Qualifier: qualifierOf(d.FullyQualifiedTypeName),
		Flags:     d.HasFlagsSemantics,
		Labels:    d.UsesAlternateLabels,
		Unsigned:  kind.Unsigned,
		BitSize:   kind.BitSize,
		Members:   make([]memberModel, 0, len(d.Members)),
	}
	fm.Local = newLocalNames(d, fm.Qualifier)
	for _, m := range d.Members {
		mm := memberModel{
			Ref:     fm.Qualifier + m.Key,
			Key:     strconv.Quote(m.Key),
			Display: strconv.Quote(m.DisplayName()),
		}
		if m.Label != nil {
			mm.Label = strconv.Quote(*m.Label)
		}
		fm.Members = append(fm.Members, mm)
	}
	return fm
}

// newLocalNames picks method parameter, local and import names that cannot
// be confused with the enum's constants. In-package constants share the
// file's scope; a qualified enum only contributes its package name.
func newLocalNames(d Descriptor, qualifier string) localNames {
	taken := make(map[string]bool, len(d.Members)+1)
	if qualifier == "" {
		for _, m := range d.Members {
			taken[m.Key] = true
		}
	} else {
		taken[strings.TrimSuffix(qualifier, ".")] = true
	}
	return localNames{
		Value:   freeName("value", taken),
		Flag:    freeName("flag", taken),
		Name:    freeName("name", taken),
		Equal:   freeName("equal", taken),
		Allow:   freeName("allowMatchingAlternateLabel", taken),
		Num:     freeName("v", taken),
		Err:     freeName("err", taken),
		Strconv: freeName("strconv", taken),
		Strings: freeName("strings", taken),
	}
}

// freeName appends underscores to base until it is not taken.
func freeName(base string, taken map[string]bool) string {
	for taken[base] {
		base += "_"
	}
	return base
}

// qualifierOf returns the "pkg." prefix of a qualified type name.
func qualifierOf(typeName string) string {
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		return typeName[:i+1]
	}
	return ""
}

func defaultOutputName(typeName string) string {
	return strings.ToLower(typeName) + "_enumgen.go"
}
