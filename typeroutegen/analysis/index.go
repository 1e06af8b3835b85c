// Package analysis implements the source-side of generation: loading the
// application's packages, resolving handler references to controller
// declarations, and extracting validation-schema usages from method bodies.
package analysis

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Index is an in-memory index of the application's source, supporting file
// lookup by path suffix and structural queries over declarations.
type Index struct {
	Fset *token.FileSet
	pkgs []*packages.Package
}

// Load builds an index for the given package patterns. dir, when non-empty,
// is the working directory for package resolution.
func Load(ctx context.Context, dir string, patterns ...string) (*Index, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %v", patterns)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors[0])
		}
	}

	return &Index{Fset: pkgs[0].Fset, pkgs: pkgs}, nil
}

// Packages returns the loaded packages.
func (ix *Index) Packages() []*packages.Package { return ix.pkgs }

// FileBySuffix returns the parsed file whose path ends with suffix, matched
// on a path-segment boundary.
func (ix *Index) FileBySuffix(suffix string) (*packages.Package, *ast.File, bool) {
	for _, pkg := range ix.pkgs {
		for _, file := range pkg.Syntax {
			name := ix.Fset.Position(file.Pos()).Filename
			if pathEndsWith(name, suffix) {
				return pkg, file, true
			}
		}
	}
	return nil, nil, false
}

func pathEndsWith(path, suffix string) bool {
	path = strings.ReplaceAll(path, "\\", "/")
	if path == suffix {
		return true
	}
	return strings.HasSuffix(path, "/"+suffix)
}
