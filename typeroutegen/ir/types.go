// Package ir defines the intermediate representation for extracted Go types.
// Providers build descriptors from go/types and the TypeScript emitter
// renders them, keeping inference decoupled from output-syntax concerns.
package ir

// DescriptorKind discriminates the descriptor union.
type DescriptorKind int

const (
	KindPrimitive DescriptorKind = iota
	KindArray
	KindMap
	KindPtr
	KindReference
	KindStruct
	KindAlias
)

func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindPtr:
		return "ptr"
	case KindReference:
		return "reference"
	case KindStruct:
		return "struct"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// TypeDescriptor is a node in the descriptor union.
type TypeDescriptor interface {
	Kind() DescriptorKind
}

// GoIdentifier names a Go entity with package context.
type GoIdentifier struct {
	// Name is the identifier, always matching [A-Za-z_][A-Za-z0-9_]*.
	Name string

	// Package is the fully qualified package path. Empty for builtins.
	Package string
}

// IsZero returns true if the identifier is empty.
func (id GoIdentifier) IsZero() bool {
	return id.Name == "" && id.Package == ""
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Route is the route pattern that triggered the warning, if applicable.
	Route string
}

// Schema accumulates the named types referenced by a generation run.
type Schema struct {
	// Types holds top-level named type descriptors (structs and aliases)
	// in first-extraction order.
	Types []TypeDescriptor

	// Warnings contains non-fatal issues encountered while building.
	Warnings []Warning
}

// AddType appends a named type descriptor.
func (s *Schema) AddType(t TypeDescriptor) {
	s.Types = append(s.Types, t)
}

// AddWarning appends a warning.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindType looks up a named type. Returns nil if not found.
func (s *Schema) FindType(name string) TypeDescriptor {
	for _, t := range s.Types {
		switch d := t.(type) {
		case *StructDescriptor:
			if d.Name.Name == name {
				return d
			}
		case *AliasDescriptor:
			if d.Name.Name == name {
				return d
			}
		}
	}
	return nil
}
