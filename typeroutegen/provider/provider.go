// Package provider converts go/types type information into the intermediate
// representation consumed by the TypeScript emitter.
package provider

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/typeroute/typeroute/typeroutegen/ir"
)

// Extractor walks go/types values reachable from request and response types
// and accumulates named descriptors on an ir.Schema. Each named type is
// extracted once; later encounters reuse the earlier descriptor.
type Extractor struct {
	schema *ir.Schema
	fset   *token.FileSet
	outDir string
	seen   map[string]bool
}

// NewExtractor returns an extractor accumulating onto schema. fset is used to
// resolve declaration positions; outDir, when non-empty, makes recorded
// source paths relative to the output directory.
func NewExtractor(schema *ir.Schema, fset *token.FileSet, outDir string) *Extractor {
	return &Extractor{
		schema: schema,
		fset:   fset,
		outDir: outDir,
		seen:   make(map[string]bool),
	}
}

// Extract converts t to a type expression, registering any named types it
// references on the schema. It never fails: types with no JSON mapping
// degrade to the unknown primitive with a warning.
func (e *Extractor) Extract(t types.Type) ir.TypeDescriptor {
	if desc := e.specialType(t); desc != nil {
		return desc
	}

	switch typ := t.(type) {
	case *types.Basic:
		return basicDescriptor(typ)

	case *types.Alias:
		return e.Extract(types.Unalias(typ))

	case *types.Named:
		e.extractNamed(typ)
		obj := typ.Obj()
		pkgPath := ""
		if obj.Pkg() != nil {
			pkgPath = obj.Pkg().Path()
		}
		return ir.Ref(namedTypeName(typ), pkgPath)

	case *types.Pointer:
		return ir.Ptr(e.Extract(typ.Elem()))

	case *types.Slice:
		return ir.Slice(e.Extract(typ.Elem()))

	case *types.Array:
		return ir.Slice(e.Extract(typ.Elem()))

	case *types.Map:
		return ir.Map(e.Extract(typ.Key()), e.Extract(typ.Elem()))

	case *types.Interface:
		if !typ.Empty() {
			e.schema.AddWarning(ir.Warning{
				Code:    "interface_type",
				Message: fmt.Sprintf("interface type %s mapped to unknown", typ.String()),
			})
		}
		return ir.Any()

	default:
		e.schema.AddWarning(ir.Warning{
			Code:    "unsupported_type",
			Message: fmt.Sprintf("type %s has no JSON mapping, mapped to unknown", t.String()),
		})
		return ir.Any()
	}
}

// extractNamed registers a named type's descriptor on the schema.
func (e *Extractor) extractNamed(named *types.Named) {
	obj := named.Obj()
	key := typeKey(named)
	if e.seen[key] {
		return
	}
	e.seen[key] = true

	pkgPath := ""
	if obj.Pkg() != nil {
		pkgPath = obj.Pkg().Path()
	}
	ident := ir.GoIdentifier{Name: namedTypeName(named), Package: pkgPath}

	switch underlying := named.Underlying().(type) {
	case *types.Struct:
		desc := &ir.StructDescriptor{
			Name:       ident,
			SourceFile: e.declFile(obj.Pos()),
		}
		for i := 0; i < underlying.NumFields(); i++ {
			field := underlying.Field(i)
			if !field.Exported() {
				continue
			}
			desc.Fields = append(desc.Fields, e.extractField(field, underlying.Tag(i)))
		}
		e.schema.AddType(desc)

	case *types.Interface:
		e.schema.AddWarning(ir.Warning{
			Code:    "interface_type",
			Message: fmt.Sprintf("interface type %s mapped to unknown", obj.Name()),
		})
		e.schema.AddType(&ir.AliasDescriptor{Name: ident, Underlying: ir.Any()})

	default:
		e.schema.AddType(&ir.AliasDescriptor{Name: ident, Underlying: e.Extract(underlying)})
	}
}

// extractField converts one struct field, honoring its json tag.
func (e *Extractor) extractField(field *types.Var, rawTag string) ir.FieldDescriptor {
	desc := ir.FieldDescriptor{Name: field.Name()}

	tag := reflect.StructTag(rawTag).Get("json")
	if tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] == "-" && len(parts) == 1 {
			desc.Skip = true
			return desc
		}
		desc.JSONName = parts[0]
		for _, opt := range parts[1:] {
			if opt == "omitempty" || opt == "omitzero" {
				desc.Optional = true
			}
		}
	}

	if _, isPtr := field.Type().(*types.Pointer); isPtr {
		desc.Optional = true
	}
	desc.Type = e.Extract(field.Type())
	return desc
}

// specialType handles types with a fixed JSON encoding.
func (e *Extractor) specialType(t types.Type) ir.TypeDescriptor {
	switch typ := t.(type) {
	case *types.Slice:
		if basic, ok := typ.Elem().(*types.Basic); ok && basic.Kind() == types.Uint8 {
			return ir.Bytes()
		}

	case *types.Named:
		obj := typ.Obj()
		if obj == nil || obj.Pkg() == nil {
			return nil
		}
		if obj.Pkg().Path() == "time" && obj.Name() == "Time" {
			return ir.Time()
		}
		if hasCustomMarshaler(typ) {
			e.schema.AddWarning(ir.Warning{
				Code:    "custom_marshaler",
				Message: fmt.Sprintf("type %s implements a custom marshaler, mapped to unknown", obj.Name()),
			})
			return ir.Any()
		}
	}
	return nil
}

// declFile returns the declaring file of pos, relative to the output
// directory when one is configured.
func (e *Extractor) declFile(pos token.Pos) string {
	if e.fset == nil || !pos.IsValid() {
		return ""
	}
	file := e.fset.Position(pos).Filename
	if e.outDir == "" {
		return file
	}
	rel, err := filepath.Rel(e.outDir, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}

// typeKey identifies a named type for dedupe. Distinct instantiations of a
// generic type are distinct types and get distinct keys.
func typeKey(named *types.Named) string {
	return named.String()
}

// namedTypeName synthesizes the emitted name for a named type. Generic
// instantiations append their type argument names, so Page[Post] and
// Page[Comment] emit as PagePost and PageComment.
func namedTypeName(named *types.Named) string {
	name := named.Obj().Name()
	args := named.TypeArgs()
	for i := 0; i < args.Len(); i++ {
		name += typeArgName(args.At(i))
	}
	return name
}

func typeArgName(t types.Type) string {
	switch typ := t.(type) {
	case *types.Named:
		return namedTypeName(typ)
	case *types.Basic:
		n := typ.Name()
		return strings.ToUpper(n[:1]) + n[1:]
	case *types.Pointer:
		return typeArgName(typ.Elem())
	case *types.Slice:
		return typeArgName(typ.Elem()) + "List"
	default:
		return "Value"
	}
}

// hasCustomMarshaler reports whether a type implements json.Marshaler or
// encoding.TextMarshaler.
func hasCustomMarshaler(named *types.Named) bool {
	for i := 0; i < named.NumMethods(); i++ {
		method := named.Method(i)
		if method.Name() != "MarshalJSON" && method.Name() != "MarshalText" {
			continue
		}
		sig, ok := method.Type().(*types.Signature)
		if ok && sig.Params().Len() == 0 && sig.Results().Len() == 2 {
			return true
		}
	}
	return false
}

func basicDescriptor(basic *types.Basic) ir.TypeDescriptor {
	switch basic.Kind() {
	case types.Bool:
		return ir.Bool()
	case types.String:
		return ir.String()
	case types.Int, types.Int8, types.Int16, types.Int32, types.Int64:
		return ir.Int()
	case types.Uint, types.Uintptr, types.Uint8, types.Uint16, types.Uint32, types.Uint64:
		return ir.Uint()
	case types.Float32, types.Float64:
		return ir.Float()
	default:
		return ir.Any()
	}
}
