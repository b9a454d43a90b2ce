package generator

import "log/slog"

// This file houses the descriptor handed to the renderer and the view model
// the templates consume (discovery -> validation -> render).

// Config holds generation settings for the enum helper generator.
type Config struct {
	Dir        string       // directory to load ("." relative to where command invoked)
	Types      []string     // enum type names to generate for (directive-marked types are added)
	Output     string       // output filename; only valid when exactly one type is generated
	Package    string       // optional: package name for generated files when different from the enum's
	ConfigFile string       // optional: path to an enumgen.yaml file
	Logger     *slog.Logger // nil means slog.Default()
	Version    string       // enumgen build version
}

// Descriptor describes one enum to generate a companion type for. It is
// produced by discovery, checked by Validate and consumed by Render.
type Descriptor struct {
	// Name is the enum's short name; the companion type is derived from it.
	Name string
	// Extensions overrides the companion type name. Empty means Name+"Extensions".
	Extensions string
	// Namespace is the package clause of the generated file. Empty renders package main.
	Namespace string
	// FullyQualifiedTypeName is how generated code spells the enum type,
	// e.g. "Color" or "colors.Color".
	FullyQualifiedTypeName string
	// ImportPath is imported when FullyQualifiedTypeName is package-qualified.
	ImportPath string
	// IsPublic mirrors the enum's own visibility onto the companion type.
	IsPublic bool
	// HasFlagsSemantics emits HasFlag.
	HasFlagsSemantics bool
	// UnderlyingIntegerType is the basic integer kind backing the enum ("int32", "uint8", ...).
	UnderlyingIntegerType string
	// UsesAlternateLabels selects the label-aware IsDefinedName/TryParse shapes.
	UsesAlternateLabels bool
	// Members in declaration order. Duplicate values are allowed.
	Members []Member
}

// Member is one declared constant of the enum.
type Member struct {
	Key   string  // declared identifier
	Label *string // alternate display label; nil means Key is the display form
}

// DisplayName returns the label when present, the key otherwise.
func (m Member) DisplayName() string {
	if m.Label != nil {
		return *m.Label
	}
	return m.Key
}

// Labeled returns a member whose display form is label.
func Labeled(key, label string) Member {
	return Member{Key: key, Label: &label}
}

// integerKind captures how the generated code converts an underlying type
// to and from text.
type integerKind struct {
	Unsigned bool
	BitSize  int // 0 selects the platform int size
}

var integerKinds = map[string]integerKind{
	"int":     {BitSize: 0},
	"int8":    {BitSize: 8},
	"int16":   {BitSize: 16},
	"int32":   {BitSize: 32},
	"int64":   {BitSize: 64},
	"uint":    {Unsigned: true, BitSize: 0},
	"uint8":   {Unsigned: true, BitSize: 8},
	"uint16":  {Unsigned: true, BitSize: 16},
	"uint32":  {Unsigned: true, BitSize: 32},
	"uint64":  {Unsigned: true, BitSize: 64},
	"uintptr": {Unsigned: true, BitSize: 0},
}

// fileModel is the root template model for a generated file.
type fileModel struct {
	Package   string
	Import    string // enum package import path, empty in-package
	Companion string
	TypeName  string // FullyQualifiedTypeName
	Qualifier string // "pkg." prefix for member constants, empty in-package
	Flags     bool
	Labels    bool
	Unsigned  bool
	BitSize   int
	Local     localNames
	Members   []memberModel
}

// localNames are the identifiers generated methods declare or import. Each
// keeps its plain spelling unless a constant or package name in the same
// scope already uses it.
type localNames struct {
	Value   string
	Flag    string
	Name    string
	Equal   string
	Allow   string
	Num     string
	Err     string
	Strconv string
	Strings string
}

// memberModel is a lightweight view of a member for templates.
type memberModel struct {
	Ref     string // constant reference, qualified when needed
	Key     string // quoted key literal
	Display string // quoted display literal
	Label   string // quoted label literal, empty when the member has none
}
