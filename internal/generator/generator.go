package generator

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// generator holds transient state while discovering and emitting enums.
type generator struct {
	log  *slog.Logger
	file *FileConfig // nil when no config file was given
}

// Run discovers the configured enums and writes one companion file per enum.
func Run(cfg Config) error { return newGenerator(cfg.Logger).run(cfg) }

// Discover loads cfg.Dir and returns validated descriptors without writing
// anything.
func Discover(cfg Config) ([]Descriptor, error) {
	descs, _, err := newGenerator(cfg.Logger).discoverAll(cfg)
	return descs, err
}

func newGenerator(logger *slog.Logger) *generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &generator{log: logger}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToLower(string(r[0])))[0]
	return string(r)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// appendUnique appends names not already present, keeping first-seen order.
func appendUnique(dst []string, seen map[string]bool, names ...string) []string {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		dst = append(dst, n)
	}
	return dst
}
