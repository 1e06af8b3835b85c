package typeroutegen

import (
	"context"
	"fmt"
	"regexp"

	"github.com/typeroute/typeroute"
	"github.com/typeroute/typeroute/typeroutegen/sink"
)

// Generator provides a fluent API for code generation.
// Create with FromApp() and configure with method chaining.
//
// Example:
//
//	typeroutegen.FromApp(app).
//	    ExceptDefinitions("/internal/health").
//	    ToDir("./client/src/api")
type Generator struct {
	app     *typeroute.App
	cfg     Config
	loadErr error
}

// FromApp creates a new Generator for the given app.
// This is the entry point for the fluent API.
func FromApp(app *typeroute.App) *Generator {
	return &Generator{app: app}
}

// Packages sets the Go package patterns to analyze.
func (g *Generator) Packages(patterns ...string) *Generator {
	g.cfg.Packages = patterns
	return g
}

// Dir sets the working directory for source analysis.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// OutDir sets the output directory used to relativize recorded source
// paths. ToDir sets it implicitly; Generate callers comparing output
// against an earlier ToDir run must set the same directory to reproduce
// its bytes.
func (g *Generator) OutDir(dir string) *Generator {
	g.cfg.OutDir = dir
	return g
}

// OutFile sets the output file name. Default "api.ts".
func (g *Generator) OutFile(name string) *Generator {
	g.cfg.OutFile = name
	return g
}

// ClientModule sets the module specifier targeted by the declare-module
// augmentation. Default "@typeroute/client".
func (g *Generator) ClientModule(module string) *Generator {
	g.cfg.ClientModule = module
	return g
}

// OnlyDefinitions restricts type entries and the definition tree to routes
// matching the given patterns. If both an only- and an except-list are
// configured for the same target, only wins.
func (g *Generator) OnlyDefinitions(patterns ...string) *Generator {
	g.cfg.Definitions = Only(literalMatchers(patterns)...)
	return g
}

// ExceptDefinitions excludes routes matching the given patterns from type
// entries and the definition tree.
func (g *Generator) ExceptDefinitions(patterns ...string) *Generator {
	if g.cfg.Definitions.IsZero() {
		g.cfg.Definitions = Except(literalMatchers(patterns)...)
	}
	return g
}

// FilterDefinitions installs a predicate filter for type entries and the
// definition tree, replacing any pattern lists.
func (g *Generator) FilterDefinitions(fn func(*typeroute.Route) bool) *Generator {
	g.cfg.Definitions = Predicate(fn)
	return g
}

// OnlyRoutes restricts the named-routes array to routes matching the given
// patterns.
func (g *Generator) OnlyRoutes(patterns ...string) *Generator {
	g.cfg.Routes = Only(literalMatchers(patterns)...)
	return g
}

// ExceptRoutes excludes routes matching the given patterns from the
// named-routes array.
func (g *Generator) ExceptRoutes(patterns ...string) *Generator {
	if g.cfg.Routes.IsZero() {
		g.cfg.Routes = Except(literalMatchers(patterns)...)
	}
	return g
}

// FilterRoutes installs a predicate filter for the named-routes array,
// replacing any pattern lists.
func (g *Generator) FilterRoutes(fn func(*typeroute.Route) bool) *Generator {
	g.cfg.Routes = Predicate(fn)
	return g
}

// LoadFile folds a typeroute.yaml into the configuration. A missing file is
// a no-op; flags and earlier fluent calls win over file values. Errors are
// deferred to generation time.
func (g *Generator) LoadFile(path string) *Generator {
	fc, err := LoadConfigFile(path)
	if err == nil {
		err = fc.Apply(&g.cfg)
	}
	if err != nil && g.loadErr == nil {
		g.loadErr = err
	}
	return g
}

// ToDir runs generation and writes the output file into dir.
func (g *Generator) ToDir(dir string) (*Result, error) {
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	g.cfg.OutDir = dir
	return GenerateTo(context.Background(), g.app, &g.cfg, sink.NewFilesystemSink(dir))
}

// Generate runs generation into a memory sink and returns the produced
// files. Useful for tests and for check mode.
func (g *Generator) Generate(ctx context.Context) (map[string][]byte, *Result, error) {
	if g.loadErr != nil {
		return nil, nil, g.loadErr
	}
	mem := sink.NewMemorySink()
	result, err := GenerateTo(ctx, g.app, &g.cfg, mem)
	if err != nil {
		return nil, result, err
	}
	return mem.Files(), result, nil
}

// Config returns a copy of the accumulated configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

func literalMatchers(patterns []string) []Matcher {
	matchers := make([]Matcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := parseMatcher(p)
		if err != nil {
			// A bad regex entry degrades to a literal match of the raw
			// entry rather than silently widening the filter.
			m = MatchLiteral(p)
		}
		matchers = append(matchers, m)
	}
	return matchers
}

// parseMatcher interprets a filter entry. Entries delimited as "/re/" are
// compiled as regular expressions; everything else matches literally.
func parseMatcher(pattern string) (Matcher, error) {
	if len(pattern) >= 2 && pattern[0] == '/' && pattern[len(pattern)-1] == '/' {
		inner := pattern[1 : len(pattern)-1]
		if inner != "" {
			re, err := regexp.Compile(inner)
			if err != nil {
				return Matcher{}, fmt.Errorf("invalid filter regexp %q: %w", pattern, err)
			}
			return MatchRegexp(re), nil
		}
	}
	return MatchLiteral(pattern), nil
}
