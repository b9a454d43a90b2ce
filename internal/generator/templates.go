package generator

import (
	"embed"
	"fmt"
	"strconv"
	"sync"
	"text/template"
)

const (
	tmplFile = "file"

	tmplToStringFast  = "toStringFast"
	tmplHasFlag       = "hasFlag"
	tmplIsDefined     = "isDefined"
	tmplIsDefinedName = "isDefinedName"
	tmplIsDefinedKeys = "isDefinedKeys"
	tmplTryParse      = "tryParse"
	tmplTryParseKeys  = "tryParseKeys"
	tmplGetValues     = "getValues"
	tmplGetNames      = "getNames"
)

const (
	templatePattern        = "templates/*.gtpl"
	templateMethodsPattern = "templates/methods/*.gtpl"
)

//go:embed templates/*.gtpl templates/methods/*.gtpl
var templatesFS embed.FS

var (
	fileTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

// validateTemplates ensures all required templates are defined
func validateTemplates() error {
	required := []string{
		tmplFile,
		tmplToStringFast,
		tmplHasFlag,
		tmplIsDefined,
		tmplIsDefinedName,
		tmplIsDefinedKeys,
		tmplTryParse,
		tmplTryParseKeys,
		tmplGetValues,
		tmplGetNames,
	}
	for _, name := range required {
		if fileTmpl.Lookup(name) == nil {
			return fmt.Errorf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplFile).Funcs(templateFuncs).ParseFS(templatesFS, templatePattern, templateMethodsPattern)
		if tmplInitErr != nil {
			return
		}
		fileTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}
