// Package check implements the `typeroute check` command.
package check

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/typeroute/typeroute/internal/discover"
	"github.com/typeroute/typeroute/internal/runner"
)

type Cmd struct {
	Out     string `arg:"" help:"Directory holding the generated file to verify."`
	Export  string `help:"Export function name (required if multiple exports exist)." short:"e"`
	Package string `help:"Package to scan (default: current directory)." short:"p" default:"."`
}

func (c *Cmd) Run() error {
	result, err := discover.Find(c.Package)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	export, err := discover.SelectExport(result.Exports, c.Export)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Found export: %s() %s\n", export.Name, export.Type)
	if result.ConfigFunc != nil {
		fmt.Printf("✓ Found config: %s(*typeroutegen.Generator) *typeroutegen.Generator\n", result.ConfigFunc.Name)
	}

	outDir, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	opts := runner.Options{
		Export: *export,
		OutDir: outDir,
		Check:  true,
		PkgDir: result.Dir,
	}
	if result.ConfigFunc != nil && export.Type == discover.ExportTypeApp {
		opts.ConfigFunc = result.ConfigFunc.Name
	}

	output, err := runner.Exec(opts)
	if err != nil {
		if len(output) > 0 {
			fmt.Fprint(os.Stderr, string(output))
		}
		return err
	}
	if len(output) > 0 {
		fmt.Print(string(output))
	}

	fmt.Println("✓ Generated file is up to date")
	return nil
}
