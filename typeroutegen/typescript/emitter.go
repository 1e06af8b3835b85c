package typescript

import (
	"bytes"
	"fmt"

	"github.com/typeroute/typeroute/typeroutegen/ir"
)

// Emitter renders IR type descriptors as TypeScript source.
type Emitter struct {
	indent string
}

// NewEmitter returns an emitter using the given indentation unit.
func NewEmitter(indent string) *Emitter {
	if indent == "" {
		indent = "  "
	}
	return &Emitter{indent: indent}
}

// EmitType emits a top-level type declaration.
func (e *Emitter) EmitType(buf *bytes.Buffer, typ ir.TypeDescriptor) error {
	switch t := typ.(type) {
	case *ir.StructDescriptor:
		return e.emitStruct(buf, t)
	case *ir.AliasDescriptor:
		return e.emitAlias(buf, t)
	default:
		return fmt.Errorf("unsupported top-level type kind: %s", typ.Kind())
	}
}

func (e *Emitter) emitStruct(buf *bytes.Buffer, s *ir.StructDescriptor) error {
	if s.SourceFile != "" {
		fmt.Fprintf(buf, "// Inferred from %s.\n", s.SourceFile)
	}
	buf.WriteString("export interface ")
	buf.WriteString(escapeReservedWord(s.Name.Name))
	buf.WriteString(" {\n")
	for _, field := range s.Fields {
		if field.Skip {
			continue
		}
		buf.WriteString(e.indent)
		buf.WriteString(propertyName(field.PropertyName()))
		if field.Optional {
			buf.WriteString("?")
		}
		buf.WriteString(": ")
		buf.WriteString(e.TypeExpr(field.Type))
		buf.WriteString(";\n")
	}
	buf.WriteString("}\n")
	return nil
}

func (e *Emitter) emitAlias(buf *bytes.Buffer, a *ir.AliasDescriptor) error {
	buf.WriteString("export type ")
	buf.WriteString(escapeReservedWord(a.Name.Name))
	buf.WriteString(" = ")
	buf.WriteString(e.TypeExpr(a.Underlying))
	buf.WriteString(";\n")
	return nil
}

// TypeExpr renders a type descriptor as an inline TypeScript type expression.
func (e *Emitter) TypeExpr(typ ir.TypeDescriptor) string {
	switch t := typ.(type) {
	case *ir.PrimitiveDescriptor:
		return primitiveExpr(t.PrimitiveKind)
	case *ir.ArrayDescriptor:
		elem := e.TypeExpr(t.Element)
		if needsParens(t.Element) {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	case *ir.MapDescriptor:
		return fmt.Sprintf("Record<%s, %s>", e.TypeExpr(t.Key), e.TypeExpr(t.Value))
	case *ir.PtrDescriptor:
		elem := e.TypeExpr(t.Element)
		return elem + " | null"
	case *ir.ReferenceDescriptor:
		return escapeReservedWord(t.Target.Name)
	default:
		return "unknown"
	}
}

func primitiveExpr(kind ir.PrimitiveKind) string {
	switch kind {
	case ir.PrimitiveBool:
		return "boolean"
	case ir.PrimitiveInt, ir.PrimitiveUint, ir.PrimitiveFloat:
		return "number"
	case ir.PrimitiveString, ir.PrimitiveBytes, ir.PrimitiveTime:
		return "string"
	default:
		return "unknown"
	}
}

// needsParens reports whether a type expression must be parenthesized
// before the array suffix is appended.
func needsParens(typ ir.TypeDescriptor) bool {
	_, ok := typ.(*ir.PtrDescriptor)
	return ok
}
