package generator

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the root of an enumgen.yaml file. Entries here take
// precedence over directives found in source.
type FileConfig struct {
	// Version of the config schema.
	Version string `yaml:"version,omitempty" validate:"oneof=1"`

	// Package names the package of generated files when it differs from the
	// enum's own package.
	Package string `yaml:"package,omitempty" validate:"omitempty,goident"`

	// Output is the generated file name; only valid with a single type.
	Output string `yaml:"output,omitempty"`

	// Types lists the enums to generate for.
	Types []TypeConfig `yaml:"types" validate:"unique=Name,dive"`
}

// TypeConfig configures generation for one enum type.
type TypeConfig struct {
	// Name of the enum type in the loaded package.
	Name string `yaml:"name" validate:"required,goident"`

	// Extensions overrides the companion type name.
	Extensions string `yaml:"extensions,omitempty" validate:"omitempty,goident"`

	// Flags marks the enum as a bitmask and emits HasFlag.
	Flags bool `yaml:"flags,omitempty"`

	// Labels maps constant names to alternate display labels.
	// Example: { "Green": "Verde" }
	Labels map[string]string `yaml:"labels,omitempty" validate:"dive,keys,goident,endkeys"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("enumgen: register goident validation: %v", err))
	}
	return v
}

// LoadConfigFile loads and parses a YAML config file from the given path.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	fc, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// ParseConfig parses YAML data into a FileConfig and validates it.
func ParseConfig(data []byte) (*FileConfig, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&fc)

	if err := validate.Struct(&fc); err != nil {
		return nil, validationError(err)
	}
	if fc.Output != "" && len(fc.Types) > 1 {
		return nil, fmt.Errorf("output %q requires exactly one type, found %d", fc.Output, len(fc.Types))
	}
	return &fc, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(fc *FileConfig) {
	if fc.Version == "" {
		fc.Version = "1"
	}
}

// typeConfig returns the entry for name, if any.
func (fc *FileConfig) typeConfig(name string) (TypeConfig, bool) {
	if fc == nil {
		return TypeConfig{}, false
	}
	for _, tc := range fc.Types {
		if tc.Name == name {
			return tc, true
		}
	}
	return TypeConfig{}, false
}

// validationError flattens validator errors into one readable error per field.
func validationError(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	var out error
	for _, ve := range valErrs {
		out = multierr.Append(out, fmt.Errorf("%s: %s", ve.Namespace(), formatValidationError(ve)))
	}
	return out
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "goident":
		return fmt.Sprintf("%q is not a Go identifier", ve.Value())
	case "unique":
		return fmt.Sprintf("duplicate %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	default:
		return fmt.Sprintf("failed on %s", ve.Tag())
	}
}
