// Package runner executes typeroute code generation by building and running
// a modified version of the user's package.
//
// It uses Go's -overlay flag to replace the user's main() with a runner
// that calls the export function and generates output.
package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/typeroute/typeroute/internal/discover"
)

// Options configures the runner.
type Options struct {
	// Export is the function to call.
	Export discover.Export

	// OutDir is the output directory for generated files.
	OutDir string

	// ConfigFunc is the optional config function name.
	// Only used when Export.Type is ExportTypeApp.
	ConfigFunc string

	// NoConfig disables the config function even if one exists.
	NoConfig bool

	// Check verifies the on-disk output is current instead of writing it.
	Check bool

	// PkgDir is the directory containing the package.
	PkgDir string
}

// Exec builds and runs the generator.
//
// It creates an overlay that:
// 1. Replaces files containing func main() with versions that have main() removed
// 2. Adds a runner file with our own main()
//
// The overlay approach lets us work with package main and unexported functions.
func Exec(opts Options) (output []byte, err error) {
	tmpDir, err := os.MkdirTemp("", "typeroute-gen-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	overlay := make(map[string]string)

	files, err := filepath.Glob(filepath.Join(opts.PkgDir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}

	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}

		hasMain, modified, err := removeMain(file)
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", file, err)
		}

		if hasMain {
			tmpFile := filepath.Join(tmpDir, filepath.Base(file))
			if err := os.WriteFile(tmpFile, modified, 0644); err != nil {
				return nil, fmt.Errorf("write modified %s: %w", file, err)
			}
			overlay[file] = tmpFile
		}
	}

	runnerSrc, err := generateRunner(opts)
	if err != nil {
		return nil, fmt.Errorf("generate runner: %w", err)
	}

	runnerFile := filepath.Join(tmpDir, "typeroute_runner_main_.go")
	if err := os.WriteFile(runnerFile, runnerSrc, 0644); err != nil {
		return nil, fmt.Errorf("write runner: %w", err)
	}

	// Map the runner in as a "new" file in the package
	overlay[filepath.Join(opts.PkgDir, "typeroute_runner_main_.go")] = runnerFile

	overlayData := struct {
		Replace map[string]string `json:"Replace"`
	}{Replace: overlay}

	overlayJSON, err := json.Marshal(overlayData)
	if err != nil {
		return nil, fmt.Errorf("marshal overlay: %w", err)
	}

	overlayFile := filepath.Join(tmpDir, "overlay.json")
	if err := os.WriteFile(overlayFile, overlayJSON, 0644); err != nil {
		return nil, fmt.Errorf("write overlay: %w", err)
	}

	// Use -mod=mod to allow updating go.mod/go.sum if needed
	binaryPath := filepath.Join(tmpDir, "runner")
	buildCmd := exec.Command("go", "build", "-mod=mod", "-overlay", overlayFile, "-o", binaryPath, ".")
	buildCmd.Dir = opts.PkgDir
	buildCmd.Env = append(os.Environ(), "GOWORK=off")
	if buildOut, err := buildCmd.CombinedOutput(); err != nil {
		return buildOut, fmt.Errorf("build: %w\n%s", err, buildOut)
	}

	runCmd := exec.Command(binaryPath)
	runCmd.Dir = opts.PkgDir
	output, err = runCmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("run: %w\n%s", err, output)
	}

	return output, nil
}

// removeMain parses a Go file and returns a version with func main() removed.
// Returns (hasMain, modifiedSource, error).
func removeMain(filename string) (bool, []byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return false, nil, err
	}

	hasMain := false
	var newDecls []ast.Decl
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Name.Name == "main" && fn.Recv == nil {
			hasMain = true
			continue
		}
		newDecls = append(newDecls, decl)
	}

	if !hasMain {
		return false, nil, nil
	}

	f.Decls = newDecls

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return false, nil, err
	}

	return true, buf.Bytes(), nil
}

// generateRunner creates the runner main() source.
func generateRunner(opts Options) ([]byte, error) {
	var tmplStr string
	switch opts.Export.Type {
	case discover.ExportTypeApp:
		tmplStr = appRunnerTemplate
	case discover.ExportTypeGenerator:
		tmplStr = generatorRunnerTemplate
	default:
		return nil, fmt.Errorf("unknown export type: %v", opts.Export.Type)
	}

	tmpl, err := template.New("runner").Parse(tmplStr)
	if err != nil {
		return nil, err
	}

	configFunc := ""
	if opts.ConfigFunc != "" && !opts.NoConfig {
		configFunc = opts.ConfigFunc
	}

	data := struct {
		ExportFunc string
		OutDir     string
		ConfigFunc string
		Check      bool
	}{
		ExportFunc: opts.Export.Name,
		OutDir:     opts.OutDir,
		ConfigFunc: configFunc,
		Check:      opts.Check,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

const appRunnerTemplate = `package main

import (
{{if .Check}}	"bytes"
	"context"
{{end}}	"fmt"
	"os"
{{if .Check}}	"path/filepath"
{{end}}
	"github.com/typeroute/typeroute/typeroutegen"
)

func main() {
	g := typeroutegen.FromApp({{.ExportFunc}}())
	g = g.LoadFile("typeroute.yaml")
{{if .ConfigFunc}}	g = {{.ConfigFunc}}(g)
{{end}}{{template "body" .}}
}
` + runnerBodyTemplate

const generatorRunnerTemplate = `package main

import (
{{if .Check}}	"bytes"
	"context"
{{end}}	"fmt"
	"os"
{{if .Check}}	"path/filepath"
{{end}})

func main() {
	g := {{.ExportFunc}}()
	g = g.LoadFile("typeroute.yaml")
{{template "body" .}}
}
` + runnerBodyTemplate

const runnerBodyTemplate = `{{define "body"}}{{if .Check}}	files, _, err := g.OutDir("{{.OutDir}}").Generate(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "typeroute check: %v\n", err)
		os.Exit(1)
	}
	stale := false
	for path, want := range files {
		got, err := os.ReadFile(filepath.Join("{{.OutDir}}", path))
		if err != nil || !bytes.Equal(got, want) {
			fmt.Fprintf(os.Stderr, "typeroute check: %s is out of date\n", path)
			stale = true
		}
	}
	if stale {
		os.Exit(1)
	}{{else}}	result, err := g.ToDir("{{.OutDir}}")
	if err != nil {
		fmt.Fprintf(os.Stderr, "typeroute gen: %v\n", err)
		os.Exit(1)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Code, w.Message)
	}{{end}}{{end}}`
