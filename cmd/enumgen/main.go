// Command enumgen generates reflection-free helper types for Go integer enums.
//
// Typical use from the package declaring the enum:
//
//	//go:generate go run github.com/calumari/enumgen/cmd/enumgen gen --type=Color
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"

	"github.com/calumari/enumgen/internal/generator"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Gen     GenCmd     `cmd:"" default:"withargs" help:"Generate companion files for enum types."`
	Inspect InspectCmd `cmd:"" help:"Print the descriptors discovery would render, without writing files."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// SourceFlags select the package and types to work on.
type SourceFlags struct {
	Type    []string `help:"Comma-separated list of enum type names." short:"t" sep:","`
	Dir     string   `help:"Directory containing the enum package." default:"." type:"path"`
	Package string   `help:"Package name for generated files when different from the enum's package." short:"p"`
	Config  string   `help:"Path to an enumgen.yaml config file." short:"c" type:"existingfile"`
}

func (f SourceFlags) config(logger *slog.Logger, output string) generator.Config {
	return generator.Config{
		Dir:        f.Dir,
		Types:      f.Type,
		Output:     output,
		Package:    f.Package,
		ConfigFile: f.Config,
		Logger:     logger,
		Version:    deriveVersion(),
	}
}

type GenCmd struct {
	SourceFlags `embed:""`
	Output      string `help:"Output filename; defaults to <type>_enumgen.go per type." short:"o"`
}

func (c *GenCmd) Run(logger *slog.Logger) error {
	return generator.Run(c.config(logger, c.Output))
}

type InspectCmd struct {
	SourceFlags `embed:""`
}

func (c *InspectCmd) Run(logger *slog.Logger) error {
	descs, err := generator.Discover(c.config(logger, ""))
	if err != nil {
		return err
	}
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	for _, d := range descs {
		cfg.Fdump(os.Stdout, d)
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(deriveVersion())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("enumgen"),
		kong.Description("Generates reflection-free helpers for Go integer enums."),
		kong.UsageOnError(),
	)
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	err := ctx.Run(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enumgen: %v\n", err)
		os.Exit(1)
	}
}
