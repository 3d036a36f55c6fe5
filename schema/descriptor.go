// Package schema describes tool input schemas as a closed set of descriptor
// kinds and adapts them to the shape expected by tool-server protocols.
//
// A Descriptor describes one input field. An object-kind Descriptor is a
// schema: an insertion-ordered mapping from field name to Descriptor.
// Optional fields are expressed as an optional-kind Descriptor wrapping the
// field's real descriptor.
package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags the variant a Descriptor holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindArray
	KindObject
	KindOptional
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindOptional:
		return "optional"
	default:
		return "invalid"
	}
}

// Fields is the insertion-ordered field mapping of an object-kind Descriptor.
type Fields = orderedmap.OrderedMap[string, *Descriptor]

// NewFields returns an empty field mapping.
func NewFields() *Fields {
	return orderedmap.New[string, *Descriptor]()
}

// Descriptor is the validation rule for one input field.
//
// Only the members relevant to Kind are meaningful: Wrapped for KindOptional,
// Items for KindArray and Fields for KindObject. A nil Fields on an object
// descriptor means the mapping is absent, which is distinct from an empty
// mapping.
type Descriptor struct {
	Kind        Kind
	Description string
	Enum        []any

	// Default is only meaningful when HasDefault is set, so that a nil or
	// zero default can still be expressed.
	Default    any
	HasDefault bool

	Wrapped *Descriptor
	Items   *Descriptor
	Fields  *Fields
}

// Field pairs a name with its descriptor when building an object.
type Field struct {
	Name   string
	Schema *Descriptor
}

func String() *Descriptor  { return &Descriptor{Kind: KindString} }
func Number() *Descriptor  { return &Descriptor{Kind: KindNumber} }
func Integer() *Descriptor { return &Descriptor{Kind: KindInteger} }
func Boolean() *Descriptor { return &Descriptor{Kind: KindBoolean} }

// Array returns an array descriptor whose elements follow items.
func Array(items *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindArray, Items: items}
}

// Optional marks d as omittable by the caller.
func Optional(d *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindOptional, Wrapped: d}
}

// Object builds an object-kind schema. Later fields with a repeated name
// replace earlier ones but keep the first position.
func Object(fields ...Field) *Descriptor {
	m := NewFields()
	for _, f := range fields {
		m.Set(f.Name, f.Schema)
	}
	return &Descriptor{Kind: KindObject, Fields: m}
}

// Describe sets the description and returns d for chaining.
func (d *Descriptor) Describe(description string) *Descriptor {
	d.Description = description
	return d
}

// OneOf restricts d to the given values and returns d for chaining.
func (d *Descriptor) OneOf(values ...any) *Descriptor {
	d.Enum = values
	return d
}

func (d *Descriptor) IsOptional() bool { return d != nil && d.Kind == KindOptional }
func (d *Descriptor) IsObject() bool   { return d != nil && d.Kind == KindObject }
func (d *Descriptor) IsArray() bool    { return d != nil && d.Kind == KindArray }

// Unwrap returns the descriptor wrapped by an optional descriptor, or d
// itself for any other kind. Exactly one level is removed.
func (d *Descriptor) Unwrap() *Descriptor {
	if d.IsOptional() {
		return d.Wrapped
	}
	return d
}

// withDefault returns an optional descriptor equivalent to d whose wrapped
// descriptor carries value as its default. Both levels carry the default so
// it survives unwrapping.
func (d *Descriptor) withDefault(value any) *Descriptor {
	inner := *d.Wrapped
	inner.Default = value
	inner.HasDefault = true

	outer := *d
	outer.Wrapped = &inner
	outer.Default = value
	outer.HasDefault = true
	return &outer
}
