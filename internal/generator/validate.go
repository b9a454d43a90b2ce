package generator

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"go.uber.org/multierr"
)

var (
	ErrNoMembers       = errors.New("enum declares no members")
	ErrDuplicateKey    = errors.New("duplicate member key")
	ErrInvalidName     = errors.New("not a Go identifier")
	ErrUnsupportedType = errors.New("unsupported underlying type")
	ErrLabelFlag       = errors.New("UsesAlternateLabels does not match member labels")
	ErrMissingImport   = errors.New("qualified type name without import path")
	ErrMissingTypeName = errors.New("missing fully qualified type name")
	ErrCompanionClash  = errors.New("member key collides with the companion type name")
)

// Validate reports every way d breaks the guarantees Render relies on. It is
// run by discovery before rendering; Render itself never checks.
func (d Descriptor) Validate() error {
	var err error
	if !token.IsIdentifier(d.Name) {
		err = multierr.Append(err, fmt.Errorf("name %q: %w", d.Name, ErrInvalidName))
	}
	if d.Extensions != "" && !token.IsIdentifier(d.Extensions) {
		err = multierr.Append(err, fmt.Errorf("extensions %q: %w", d.Extensions, ErrInvalidName))
	}
	if d.Namespace != "" && !token.IsIdentifier(d.Namespace) {
		err = multierr.Append(err, fmt.Errorf("namespace %q: %w", d.Namespace, ErrInvalidName))
	}
	switch {
	case d.FullyQualifiedTypeName == "":
		err = multierr.Append(err, ErrMissingTypeName)
	case strings.Contains(d.FullyQualifiedTypeName, ".") && d.ImportPath == "":
		err = multierr.Append(err, fmt.Errorf("%s: %w", d.FullyQualifiedTypeName, ErrMissingImport))
	}
	if _, ok := integerKinds[d.UnderlyingIntegerType]; !ok {
		err = multierr.Append(err, fmt.Errorf("%q: %w", d.UnderlyingIntegerType, ErrUnsupportedType))
	}
	if len(d.Members) == 0 {
		err = multierr.Append(err, ErrNoMembers)
	}

	seen := make(map[string]bool, len(d.Members))
	labeled := false
	companion := d.CompanionName()
	for _, m := range d.Members {
		if !token.IsIdentifier(m.Key) {
			err = multierr.Append(err, fmt.Errorf("member %q: %w", m.Key, ErrInvalidName))
		}
		// Both live in the enum's package scope unless the file is generated elsewhere.
		if d.ImportPath == "" && m.Key == companion {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrCompanionClash, m.Key))
		}
		if seen[m.Key] {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrDuplicateKey, m.Key))
		}
		seen[m.Key] = true
		if m.Label != nil {
			labeled = true
		}
	}
	if labeled != d.UsesAlternateLabels {
		err = multierr.Append(err, ErrLabelFlag)
	}
	return err
}
