package generator

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// Directives are line comments attached to type and constant declarations:
//
//	//enumgen:extensions [CompanionName]
//	//enumgen:flags
//	//enumgen:label "display text"
//
// extensions and flags belong on the enum type; label belongs on a single
// constant, either in its doc comment or as a trailing comment.
const directivePrefix = "//enumgen:"

// directiveKind represents the type of directive.
type directiveKind string

const (
	directiveExtensions directiveKind = "extensions"
	directiveFlags      directiveKind = "flags"
	directiveLabel      directiveKind = "label"
)

// directive is one parsed //enumgen: comment.
type directive struct {
	Kind directiveKind
	Arg  string         // companion name or unquoted label; empty otherwise
	Pos  token.Position // source location
}

// typeDirectives collects the directives found on one type declaration.
type typeDirectives struct {
	Generate   bool
	Extensions string
	Flags      bool
}

// fileDirectives holds what parseFileDirectives found in one file.
type fileDirectives struct {
	Types  map[string]typeDirectives
	Labels map[*ast.Ident]string
	Marked []string // types carrying //enumgen:extensions, in source order
}

// parseDirective parses a single comment. ok is false for comments that are
// not enumgen directives.
func parseDirective(fset *token.FileSet, c *ast.Comment) (d directive, ok bool, err error) {
	if !strings.HasPrefix(c.Text, directivePrefix) {
		return directive{}, false, nil
	}
	pos := fset.Position(c.Pos())
	text := strings.TrimPrefix(c.Text, directivePrefix)
	kind, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)

	d = directive{Kind: directiveKind(kind), Pos: pos}
	switch d.Kind {
	case directiveExtensions:
		if rest != "" && !token.IsIdentifier(rest) {
			return d, true, fmt.Errorf("%s: //enumgen:extensions name %q is not a Go identifier", pos, rest)
		}
		d.Arg = rest
	case directiveFlags:
		if rest != "" {
			return d, true, fmt.Errorf("%s: //enumgen:flags takes no arguments", pos)
		}
	case directiveLabel:
		label, err := strconv.Unquote(rest)
		if err != nil {
			return d, true, fmt.Errorf("%s: //enumgen:label wants a quoted string, got %q", pos, rest)
		}
		d.Arg = label
	default:
		return d, true, fmt.Errorf("%s: unknown directive //enumgen:%s", pos, kind)
	}
	return d, true, nil
}

// parseGroups parses every directive in the given comment groups.
func parseGroups(fset *token.FileSet, groups ...*ast.CommentGroup) ([]directive, error) {
	var out []directive
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			d, ok, err := parseDirective(fset, c)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

// parseFileDirectives extracts directives attached to type and constant
// declarations of f.
func parseFileDirectives(fset *token.FileSet, f *ast.File) (*fileDirectives, error) {
	res := &fileDirectives{
		Types:  make(map[string]typeDirectives),
		Labels: make(map[*ast.Ident]string),
	}
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		// An ungrouped declaration carries its doc on the GenDecl.
		var declDoc *ast.CommentGroup
		if !gd.Lparen.IsValid() {
			declDoc = gd.Doc
		}
		for _, spec := range gd.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				ds, err := parseGroups(fset, declDoc, s.Doc, s.Comment)
				if err != nil {
					return nil, err
				}
				if len(ds) == 0 {
					continue
				}
				var td typeDirectives
				for _, d := range ds {
					switch d.Kind {
					case directiveExtensions:
						td.Generate = true
						td.Extensions = d.Arg
					case directiveFlags:
						td.Flags = true
					case directiveLabel:
						return nil, fmt.Errorf("%s: //enumgen:label must be attached to a constant", d.Pos)
					}
				}
				res.Types[s.Name.Name] = td
				if td.Generate {
					res.Marked = append(res.Marked, s.Name.Name)
				}
			case *ast.ValueSpec:
				ds, err := parseGroups(fset, declDoc, s.Doc, s.Comment)
				if err != nil {
					return nil, err
				}
				for _, d := range ds {
					if d.Kind != directiveLabel {
						return nil, fmt.Errorf("%s: //enumgen:%s must be attached to a type", d.Pos, d.Kind)
					}
					if gd.Tok != token.CONST {
						return nil, fmt.Errorf("%s: //enumgen:label must be attached to a constant", d.Pos)
					}
					if len(s.Names) != 1 {
						return nil, fmt.Errorf("%s: //enumgen:label is ambiguous on a multi-name declaration", d.Pos)
					}
					res.Labels[s.Names[0]] = d.Arg
				}
			}
		}
	}
	return res, nil
}
