// Package discover finds typeroute export functions by signature.
//
// It scans a Go package for functions with these signatures:
//   - func() *typeroute.App
//   - func() *typeroutegen.Generator
//
// No directives or annotations needed; the signature is the marker.
package discover

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

const (
	runtimePkgPath   = "github.com/typeroute/typeroute"
	generatorPkgPath = "github.com/typeroute/typeroute/typeroutegen"
)

// ExportType represents the return type of an export function.
type ExportType int

const (
	ExportTypeApp       ExportType = iota // func() *typeroute.App
	ExportTypeGenerator                   // func() *typeroutegen.Generator
)

func (t ExportType) String() string {
	switch t {
	case ExportTypeApp:
		return "*typeroute.App"
	case ExportTypeGenerator:
		return "*typeroutegen.Generator"
	default:
		return "unknown"
	}
}

// Export represents a discovered export function.
type Export struct {
	Name string         // function name
	Type ExportType     // return type
	Pos  token.Position // source location
}

// ConfigFunc represents a discovered config function.
// Signature: func(*typeroutegen.Generator) *typeroutegen.Generator
type ConfigFunc struct {
	Name string
	Pos  token.Position
}

// Result contains discovered exports and package info.
type Result struct {
	Exports     []Export
	ConfigFunc  *ConfigFunc // optional config function
	PackagePath string
	ModulePath  string
	ModuleDir   string // directory containing go.mod
	Dir         string // directory containing the package
}

// Find scans a Go package for export functions.
//
// The pattern follows go command semantics:
//   - "." for current directory
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
func Find(pattern string) (*Result, error) {
	return FindDir(pattern, "")
}

// FindDir is like Find but allows specifying a working directory.
func FindDir(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles |
			packages.NeedTypes | packages.NeedModule,
		Dir: dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackagePath: pkg.PkgPath,
	}

	if pkg.Module != nil {
		result.ModulePath = pkg.Module.Path
		result.ModuleDir = pkg.Module.Dir
	}

	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		fn, ok := obj.(*types.Func)
		if !ok {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}

		// Must be package-level (no receiver)
		if sig.Recv() != nil {
			continue
		}

		if isConfigFunc(sig) {
			result.ConfigFunc = &ConfigFunc{
				Name: fn.Name(),
				Pos:  pkg.Fset.Position(fn.Pos()),
			}
			continue
		}

		if sig.Params().Len() != 0 {
			continue
		}
		if sig.Results().Len() != 1 {
			continue
		}

		ret := sig.Results().At(0).Type()
		exportType, ok := classifyType(ret)
		if !ok {
			continue
		}

		result.Exports = append(result.Exports, Export{
			Name: fn.Name(),
			Type: exportType,
			Pos:  pkg.Fset.Position(fn.Pos()),
		})
	}

	return result, nil
}

// isConfigFunc checks if a signature matches
// func(*typeroutegen.Generator) *typeroutegen.Generator.
func isConfigFunc(sig *types.Signature) bool {
	if sig.Params().Len() != 1 {
		return false
	}
	if sig.Results().Len() != 1 {
		return false
	}
	if !isGeneratorPtr(sig.Params().At(0).Type()) {
		return false
	}
	return isGeneratorPtr(sig.Results().At(0).Type())
}

// isGeneratorPtr checks if a type is *typeroutegen.Generator.
func isGeneratorPtr(t types.Type) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}

	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return false
	}

	pkg := named.Obj().Pkg()
	if pkg == nil {
		return false
	}

	return pkg.Path() == generatorPkgPath && named.Obj().Name() == "Generator"
}

// classifyType checks if a type is *typeroute.App or *typeroutegen.Generator.
func classifyType(t types.Type) (ExportType, bool) {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return 0, false
	}

	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return 0, false
	}

	pkg := named.Obj().Pkg()
	if pkg == nil {
		return 0, false
	}

	typeName := named.Obj().Name()
	pkgPath := pkg.Path()

	switch {
	case pkgPath == runtimePkgPath && typeName == "App":
		return ExportTypeApp, true
	case pkgPath == generatorPkgPath && typeName == "Generator":
		return ExportTypeGenerator, true
	default:
		return 0, false
	}
}

// SelectExport picks the export to use based on found exports and optional name.
//
// If name is empty:
//   - Returns the export if exactly one found
//   - Returns error if zero or multiple found
//
// If name is specified:
//   - Returns the export with that name
//   - Returns error if not found
func SelectExport(exports []Export, name string) (*Export, error) {
	if name != "" {
		for i := range exports {
			if exports[i].Name == name {
				return &exports[i], nil
			}
		}
		return nil, fmt.Errorf("export %q not found", name)
	}

	switch len(exports) {
	case 0:
		return nil, fmt.Errorf("no export found\n\nAdd a function that returns *typeroute.App:\n\n    func SetupApp() *typeroute.App {\n        app := typeroute.NewApp()\n        // ...\n        return app\n    }")
	case 1:
		return &exports[0], nil
	default:
		msg := "multiple exports found:\n"
		for _, e := range exports {
			msg += fmt.Sprintf("  - %s() %s\n", e.Name, e.Type)
		}
		msg += "\nSpecify which one: typeroute gen --export <name> <outdir>"
		return nil, fmt.Errorf("%s", msg)
	}
}
