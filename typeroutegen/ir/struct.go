package ir

// StructDescriptor represents a named Go struct extracted from source.
type StructDescriptor struct {
	// Name identifies the struct.
	Name GoIdentifier

	// Fields are the exported fields in declaration order.
	Fields []FieldDescriptor

	// SourceFile is the file the struct was declared in, relative to the
	// generator's output directory when that is known.
	SourceFile string
}

// Kind returns KindStruct.
func (d *StructDescriptor) Kind() DescriptorKind { return KindStruct }

// FieldDescriptor represents one struct field.
type FieldDescriptor struct {
	// Name is the Go field name.
	Name string

	// JSONName is the property name from the json tag, or "" to use Name.
	JSONName string

	// Type is the field type.
	Type TypeDescriptor

	// Optional marks fields carrying json:",omitempty" or a pointer type.
	Optional bool

	// Skip marks fields excluded from serialization (json:"-").
	Skip bool
}

// PropertyName returns the emitted property name for the field.
func (f FieldDescriptor) PropertyName() string {
	if f.JSONName != "" {
		return f.JSONName
	}
	return f.Name
}

// AliasDescriptor represents a named non-struct type, e.g. `type UserID int64`.
type AliasDescriptor struct {
	// Name identifies the alias.
	Name GoIdentifier

	// Underlying is the aliased type expression.
	Underlying TypeDescriptor
}

// Kind returns KindAlias.
func (d *AliasDescriptor) Kind() DescriptorKind { return KindAlias }
