package ir

// PrimitiveKind enumerates primitive descriptor variants.
type PrimitiveKind int

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveInt
	PrimitiveUint
	PrimitiveFloat
	PrimitiveString
	PrimitiveBytes
	PrimitiveTime
	PrimitiveAny
)

// PrimitiveDescriptor represents a scalar type.
type PrimitiveDescriptor struct {
	PrimitiveKind PrimitiveKind
}

// Kind returns KindPrimitive.
func (d *PrimitiveDescriptor) Kind() DescriptorKind { return KindPrimitive }

// Bool returns a boolean descriptor.
func Bool() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveBool} }

// Int returns a signed integer descriptor.
func Int() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveInt} }

// Uint returns an unsigned integer descriptor.
func Uint() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveUint} }

// Float returns a floating-point descriptor.
func Float() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveFloat} }

// String returns a string descriptor.
func String() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveString} }

// Bytes returns a []byte descriptor (base64-encoded in JSON).
func Bytes() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveBytes} }

// Time returns a time.Time descriptor (RFC 3339 string in JSON).
func Time() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveTime} }

// Any returns a descriptor for types with no better mapping.
func Any() *PrimitiveDescriptor { return &PrimitiveDescriptor{PrimitiveKind: PrimitiveAny} }

// ArrayDescriptor represents a slice or array element sequence.
type ArrayDescriptor struct {
	// Element is the array element type.
	Element TypeDescriptor
}

// Kind returns KindArray.
func (d *ArrayDescriptor) Kind() DescriptorKind { return KindArray }

// Slice returns an ArrayDescriptor.
func Slice(element TypeDescriptor) *ArrayDescriptor {
	return &ArrayDescriptor{Element: element}
}

// MapDescriptor represents a key-value mapping.
type MapDescriptor struct {
	Key   TypeDescriptor
	Value TypeDescriptor
}

// Kind returns KindMap.
func (d *MapDescriptor) Kind() DescriptorKind { return KindMap }

// Map returns a MapDescriptor.
func Map(key, value TypeDescriptor) *MapDescriptor {
	return &MapDescriptor{Key: key, Value: value}
}

// PtrDescriptor represents a Go pointer type (*T). Pointer fields render as
// optional in the emitted TypeScript.
type PtrDescriptor struct {
	Element TypeDescriptor
}

// Kind returns KindPtr.
func (d *PtrDescriptor) Kind() DescriptorKind { return KindPtr }

// Ptr returns a PtrDescriptor.
func Ptr(element TypeDescriptor) *PtrDescriptor {
	return &PtrDescriptor{Element: element}
}

// ReferenceDescriptor is a reference to a named type in Schema.Types.
type ReferenceDescriptor struct {
	Target GoIdentifier
}

// Kind returns KindReference.
func (d *ReferenceDescriptor) Kind() DescriptorKind { return KindReference }

// Ref returns a ReferenceDescriptor.
func Ref(name, pkg string) *ReferenceDescriptor {
	return &ReferenceDescriptor{Target: GoIdentifier{Name: name, Package: pkg}}
}
