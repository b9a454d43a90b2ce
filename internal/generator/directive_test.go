package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (*token.FileSet, *ast.File) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)
	return fset, f
}

func TestParseFileDirectives(t *testing.T) {
	t.Run("type and constant directives", func(t *testing.T) {
		fset, f := parseSource(t, `package p

// Mode is a bitmask.
//
//enumgen:extensions ModeExt
//enumgen:flags
type Mode int

//enumgen:label "lone"
const Lone Mode = 8

const (
	//enumgen:label "read only"
	A Mode = 1
	B Mode = 2 //enumgen:label "B\tlabel"
	C Mode = 4 // plain comment
)

type (
	//enumgen:extensions
	Grouped int
	Other   int
)
`)
		fd, err := parseFileDirectives(fset, f)
		require.NoError(t, err)
		require.Equal(t, typeDirectives{Generate: true, Extensions: "ModeExt", Flags: true}, fd.Types["Mode"])
		require.Equal(t, typeDirectives{Generate: true}, fd.Types["Grouped"])
		require.NotContains(t, fd.Types, "Other")
		require.Equal(t, []string{"Mode", "Grouped"}, fd.Marked)

		labels := map[string]string{}
		for ident, label := range fd.Labels {
			labels[ident.Name] = label
		}
		require.Equal(t, map[string]string{"Lone": "lone", "A": "read only", "B": "B\tlabel"}, labels)
	})

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "unknown directive",
			src:     "package p\n\n//enumgen:frobnicate\ntype T int\n",
			wantErr: "src.go:3:1: unknown directive //enumgen:frobnicate",
		},
		{
			name:    "unquoted label",
			src:     "package p\n\ntype T int\n\nconst (\n\tA T = 1 //enumgen:label bare\n)\n",
			wantErr: "//enumgen:label wants a quoted string",
		},
		{
			name:    "flags with argument",
			src:     "package p\n\n//enumgen:flags yes\ntype T int\n",
			wantErr: "//enumgen:flags takes no arguments",
		},
		{
			name:    "bad companion name",
			src:     "package p\n\n//enumgen:extensions 9lives\ntype T int\n",
			wantErr: "is not a Go identifier",
		},
		{
			name:    "flags on a constant",
			src:     "package p\n\ntype T int\n\n//enumgen:flags\nconst A T = 1\n",
			wantErr: "//enumgen:flags must be attached to a type",
		},
		{
			name:    "label on a variable",
			src:     "package p\n\ntype T int\n\n//enumgen:label \"a\"\nvar A T = 1\n",
			wantErr: "//enumgen:label must be attached to a constant",
		},
		{
			name:    "label on several names",
			src:     "package p\n\ntype T int\n\n//enumgen:label \"a\"\nconst A, B T = 1, 2\n",
			wantErr: "ambiguous on a multi-name declaration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fset, f := parseSource(t, tt.src)
			_, err := parseFileDirectives(fset, f)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseDirectiveIgnoresOtherComments(t *testing.T) {
	fset := token.NewFileSet()
	for _, text := range []string{"// enumgen:flags", "//go:generate enumgen", "// plain"} {
		_, ok, err := parseDirective(fset, &ast.Comment{Text: text})
		require.NoError(t, err)
		require.False(t, ok, text)
	}
}
