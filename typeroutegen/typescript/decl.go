// Package typescript renders the generator's output as a single TypeScript
// source file. The declaration types here form the document model; the
// Printer serializes them deterministically so repeated runs over an
// unchanged route table produce byte-identical output.
package typescript

import (
	"bytes"
	"fmt"

	"github.com/typeroute/typeroute/typeroutegen/deftree"
	"github.com/typeroute/typeroute/typeroutegen/ir"
)

// Decl is one top-level declaration in the generated file.
type Decl interface {
	emit(buf *bytes.Buffer, e *Emitter) error
}

// TypeDecl emits an extracted Go type as an interface or type alias.
type TypeDecl struct {
	Descriptor ir.TypeDescriptor
}

func (d *TypeDecl) emit(buf *bytes.Buffer, e *Emitter) error {
	return e.EmitType(buf, d.Descriptor)
}

// EntryAlias is one route's request/response pair, e.g.
//
//	export type PostsPost = { request: StorePostPayload; response: Post; };
type EntryAlias struct {
	Name     string
	Request  string
	Response string
}

func (d *EntryAlias) emit(buf *bytes.Buffer, e *Emitter) error {
	fmt.Fprintf(buf, "export type %s = { request: %s; response: %s; };\n",
		escapeReservedWord(d.Name), d.Request, d.Response)
	return nil
}

// DefinitionInterface emits the nested URL-segment hierarchy as a single
// exported interface rooted at Name.
type DefinitionInterface struct {
	Name string
	Root *deftree.Node
}

func (d *DefinitionInterface) emit(buf *bytes.Buffer, e *Emitter) error {
	fmt.Fprintf(buf, "export interface %s {\n", escapeReservedWord(d.Name))
	emitNodeBody(buf, e, d.Root, 1)
	buf.WriteString("}\n")
	return nil
}

// emitNodeBody writes a node's $url marker, verb keys and children. Verb
// keys come before child segments so a terminal node's own entries read
// first.
func emitNodeBody(buf *bytes.Buffer, e *Emitter, node *deftree.Node, depth int) {
	pad := indentN(e.indent, depth)
	if node.Terminal() {
		fmt.Fprintf(buf, "%s$url: Record<string, never>;\n", pad)
	}
	for _, verb := range node.Verbs() {
		fmt.Fprintf(buf, "%s$%s: %s;\n", pad, verb.Verb, verb.TypeName)
	}
	for _, key := range node.Keys() {
		fmt.Fprintf(buf, "%s%s: {\n", pad, propertyName(key))
		emitNodeBody(buf, e, node.Child(key), depth+1)
		fmt.Fprintf(buf, "%s};\n", pad)
	}
}

// RouteEntry is the emitter-side record for one element of the runtime
// routes array.
type RouteEntry struct {
	Params   []string
	Name     string
	Path     string
	Methods  []string
	TypeName string
}

// RoutesConst emits the runtime routes array as a const assertion.
type RoutesConst struct {
	Name    string
	Entries []RouteEntry
}

func (d *RoutesConst) emit(buf *bytes.Buffer, e *Emitter) error {
	name := escapeReservedWord(d.Name)
	if len(d.Entries) == 0 {
		fmt.Fprintf(buf, "export const %s = [] as const;\n", name)
		return nil
	}
	fmt.Fprintf(buf, "export const %s = [\n", name)
	pad := indentN(e.indent, 1)
	inner := indentN(e.indent, 2)
	for _, entry := range d.Entries {
		fmt.Fprintf(buf, "%s{\n", pad)
		fmt.Fprintf(buf, "%sparams: %s,\n", inner, stringArray(entry.Params))
		fmt.Fprintf(buf, "%sname: %q,\n", inner, entry.Name)
		fmt.Fprintf(buf, "%spath: %q,\n", inner, entry.Path)
		fmt.Fprintf(buf, "%smethod: %s,\n", inner, stringArray(entry.Methods))
		fmt.Fprintf(buf, "%stypes: {} as %s,\n", inner, entry.TypeName)
		fmt.Fprintf(buf, "%s},\n", pad)
	}
	buf.WriteString("] as const;\n")
	return nil
}

func stringArray(values []string) string {
	var b bytes.Buffer
	b.WriteString("[")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", v)
	}
	b.WriteString("]")
	return b.String()
}

// AggregateConst emits the single object bundling the routes array and the
// definition hierarchy, e.g.
//
//	export const api = { routes, definition: {} as ApiDefinition };
type AggregateConst struct {
	Name           string
	RoutesRef      string
	DefinitionType string
}

func (d *AggregateConst) emit(buf *bytes.Buffer, e *Emitter) error {
	fmt.Fprintf(buf, "export const %s = {\n", escapeReservedWord(d.Name))
	pad := indentN(e.indent, 1)
	fmt.Fprintf(buf, "%s%s,\n", pad, d.RoutesRef)
	fmt.Fprintf(buf, "%sdefinition: {} as %s,\n", pad, d.DefinitionType)
	buf.WriteString("};\n")
	return nil
}

// ModuleAugmentation emits the declare-module block wiring the generated
// shapes into the client library's ambient interface.
type ModuleAugmentation struct {
	Module         string
	Interface      string
	RoutesRef      string
	DefinitionType string
}

func (d *ModuleAugmentation) emit(buf *bytes.Buffer, e *Emitter) error {
	fmt.Fprintf(buf, "declare module %q {\n", d.Module)
	pad := indentN(e.indent, 1)
	inner := indentN(e.indent, 2)
	fmt.Fprintf(buf, "%sinterface %s {\n", pad, d.Interface)
	fmt.Fprintf(buf, "%sroutes: typeof %s;\n", inner, d.RoutesRef)
	fmt.Fprintf(buf, "%sdefinition: %s;\n", inner, d.DefinitionType)
	fmt.Fprintf(buf, "%s}\n", pad)
	buf.WriteString("}\n")
	return nil
}

func indentN(unit string, depth int) string {
	var b bytes.Buffer
	for i := 0; i < depth; i++ {
		b.WriteString(unit)
	}
	return b.String()
}
