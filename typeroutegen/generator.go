// Package typeroutegen generates TypeScript route and payload definitions
// from a registered typeroute application. It statically analyzes the
// controller source with go/packages, infers request payloads from
// validation-schema usages and response types from method signatures, and
// emits a single TypeScript file binding the whole route table to the
// client library.
package typeroutegen

import (
	"context"
	"fmt"
	"os"

	"github.com/typeroute/typeroute"
	"github.com/typeroute/typeroute/typeroutegen/analysis"
	"github.com/typeroute/typeroute/typeroutegen/deftree"
	"github.com/typeroute/typeroute/typeroutegen/ir"
	"github.com/typeroute/typeroute/typeroutegen/provider"
	"github.com/typeroute/typeroute/typeroutegen/sink"
	"github.com/typeroute/typeroute/typeroutegen/typescript"
)

// Config holds the configuration for code generation.
type Config struct {
	// OutDir is the directory the generated file is written to.
	// e.g. "./client/src/api"
	OutDir string

	// OutFile is the output file name within OutDir. Default "api.ts".
	OutFile string

	// Dir is the working directory for source analysis. Default ".".
	Dir string

	// Packages are the Go package patterns to analyze.
	// Default []string{"./..."}.
	Packages []string

	// ClientModule is the module specifier targeted by the declare-module
	// augmentation. Default "@typeroute/client".
	ClientModule string

	// Definitions filters the routes contributing type entries and
	// definition-tree nodes.
	Definitions RouteFilter

	// Routes filters the routes contributing to the named-routes array.
	Routes RouteFilter
}

func applyConfigDefaults(cfg *Config) *Config {
	out := *cfg
	if out.OutFile == "" {
		out.OutFile = "api.ts"
	}
	if out.Dir == "" {
		out.Dir = "."
	}
	if len(out.Packages) == 0 {
		out.Packages = []string{"./..."}
	}
	if out.ClientModule == "" {
		out.ClientModule = "@typeroute/client"
	}
	return &out
}

// Result reports what a generation run produced.
type Result struct {
	// Files are the sink-relative paths written.
	Files []string

	// Warnings are the non-fatal issues encountered. Unresolvable handlers
	// and schemas degrade to unknown rather than failing the run.
	Warnings []ir.Warning

	// TypesGenerated counts the emitted named type declarations.
	TypesGenerated int
}

// entry is one synthesized type entry keyed by its route-derived name.
type entry struct {
	name     string
	request  string
	response string
}

// Generate runs generation against the filesystem, writing into
// cfg.OutDir. Warnings go to stderr; only a sink write failure (or a source
// load failure) is fatal.
func Generate(app *typeroute.App, cfg *Config) error {
	if cfg.OutDir == "" {
		return fmt.Errorf("OutDir is required")
	}
	result, err := GenerateTo(context.Background(), app, cfg, sink.NewFilesystemSink(cfg.OutDir))
	if result != nil {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", w.Code, w.Message)
		}
	}
	return err
}

// GenerateTo runs generation into an arbitrary sink. The emitted file is
// deterministic: repeated runs over an unchanged route table and source
// tree produce byte-identical output.
func GenerateTo(ctx context.Context, app *typeroute.App, cfg *Config, out sink.OutputSink) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	routes := app.Routes()

	ix, err := analysis.Load(ctx, cfg.Dir, cfg.Packages...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	schema := &ir.Schema{}
	extractor := provider.NewExtractor(schema, ix.Fset, cfg.OutDir)
	emitter := typescript.NewEmitter("")

	var order []string
	entries := make(map[string]*entry)
	tree := deftree.New()

	for _, r := range cfg.Definitions.Apply(routes) {
		ref, ok := r.Ref()
		if !ok {
			// Inline function handlers carry no analyzable source.
			continue
		}

		h := ix.ResolveHandler(ref)
		if h == nil {
			schema.AddWarning(ir.Warning{
				Code:    "unresolved_handler",
				Message: fmt.Sprintf("handler %q could not be resolved to a controller method", ref),
				Route:   r.Pattern,
			})
			continue
		}

		request := UnknownType
		reqType, err := ix.RequestSchema(h)
		if err != nil {
			schema.AddWarning(ir.Warning{
				Code:    "schema_resolution",
				Message: fmt.Sprintf("handler %q: %v", ref, err),
				Route:   r.Pattern,
			})
		} else if reqType != nil {
			request = emitter.TypeExpr(extractor.Extract(reqType))
		}

		response := UnknownType
		if respType := ix.ResponseType(h); respType != nil {
			response = emitter.TypeExpr(extractor.Extract(respType))
		}

		typeName := TypeName(r.Pattern, r.Methods)
		if _, exists := entries[typeName]; exists {
			schema.AddWarning(ir.Warning{
				Code:    "type_name_collision",
				Message: fmt.Sprintf("type name %q generated more than once; later route wins", typeName),
				Route:   r.Pattern,
			})
		} else {
			order = append(order, typeName)
		}
		entries[typeName] = &entry{name: typeName, request: request, response: response}

		tree.Insert(segmentKeys(r.Pattern), r.Methods, typeName)
	}

	routeEntries := BuildRouteEntries(cfg.Routes.Apply(routes), func(name string) bool {
		_, ok := entries[name]
		return ok
	})

	doc := buildDocument(cfg, schema, order, entries, tree, routeEntries)

	printer := typescript.NewPrinter(typescript.PrinterConfig{})
	content, err := printer.Print(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering output: %w", err)
	}

	if err := out.WriteFile(ctx, cfg.OutFile, content); err != nil {
		return nil, fmt.Errorf("writing %s: %w", cfg.OutFile, err)
	}

	return &Result{
		Files:          []string{cfg.OutFile},
		Warnings:       schema.Warnings,
		TypesGenerated: len(schema.Types) + len(order),
	}, nil
}

// segmentKeys converts a pattern into definition-tree keys, restoring the
// sigil on dynamic segments so they emit as quoted ":name" properties.
func segmentKeys(pattern string) []string {
	segs := typeroute.ParsePattern(pattern)
	keys := make([]string, len(segs))
	for i, seg := range segs {
		if seg.Param {
			keys[i] = string(typeroute.ParamSigil) + seg.Value
		} else {
			keys[i] = seg.Value
		}
	}
	return keys
}

func buildDocument(cfg *Config, schema *ir.Schema, order []string, entries map[string]*entry, tree *deftree.Node, routeEntries []RouteNameEntry) *typescript.Document {
	doc := &typescript.Document{}

	for _, t := range schema.Types {
		doc.Add(&typescript.TypeDecl{Descriptor: t})
	}
	for _, name := range order {
		e := entries[name]
		doc.Add(&typescript.EntryAlias{Name: e.name, Request: e.request, Response: e.response})
	}

	doc.Add(&typescript.DefinitionInterface{Name: "ApiDefinition", Root: tree})

	rc := &typescript.RoutesConst{Name: "routes"}
	for _, e := range routeEntries {
		rc.Entries = append(rc.Entries, typescript.RouteEntry{
			Params:   e.Params,
			Name:     e.Name,
			Path:     e.Path,
			Methods:  e.Methods,
			TypeName: e.TypeName,
		})
	}
	doc.Add(rc)

	doc.Add(&typescript.AggregateConst{
		Name:           "api",
		RoutesRef:      "routes",
		DefinitionType: "ApiDefinition",
	})
	doc.Add(&typescript.ModuleAugmentation{
		Module:         cfg.ClientModule,
		Interface:      "Api",
		RoutesRef:      "routes",
		DefinitionType: "ApiDefinition",
	})
	return doc
}
