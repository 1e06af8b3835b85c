// Package gen implements the `typeroute gen` command.
package gen

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/typeroute/typeroute/internal/discover"
	"github.com/typeroute/typeroute/internal/runner"
	"github.com/typeroute/typeroute/internal/watch"
)

type Cmd struct {
	Out      string `arg:"" help:"Output directory for the generated file."`
	Export   string `help:"Export function name (required if multiple exports exist)." short:"e"`
	Watch    bool   `help:"Watch for source changes and regenerate." short:"w"`
	NoConfig bool   `help:"Ignore config function."`
	Package  string `help:"Package to scan (default: current directory)." short:"p" default:"."`
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

	outDir, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	opts := runner.Options{
		Export:   *export,
		OutDir:   outDir,
		NoConfig: c.NoConfig,
		PkgDir:   result.Dir,
	}

	if result.ConfigFunc != nil && export.Type == discover.ExportTypeApp {
		opts.ConfigFunc = result.ConfigFunc.Name
	}

	if !c.Watch {
		return runOnce(opts)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Run once up front so the output exists before the first change.
	if err := runOnce(opts); err != nil {
		fmt.Fprintf(os.Stderr, "typeroute gen: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "typeroute gen: watching %s\n", result.Dir)
	w := &watch.Watcher{
		Root: result.Dir,
		OnChange: func() error {
			if err := runOnce(opts); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "typeroute gen: regenerated")
			return nil
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "typeroute gen: %v\n", err)
		},
	}
	err = w.Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

func runOnce(opts runner.Options) error {
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
	return nil
}
