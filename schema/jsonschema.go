package schema

import (
	"github.com/invopop/jsonschema"
)

// Reflect builds the descriptor of the struct type T from its json and
// jsonschema tags. Fields are optional unless tagged `jsonschema:"required"`.
//
// Example usage:
//
//	type TransferArgs struct {
//	    To     string `json:"to" jsonschema:"required,description=Recipient address"`
//	    Amount string `json:"amount" jsonschema:"required"`
//	    Memo   string `json:"memo"`
//	}
//	d := schema.Reflect[TransferArgs]()
func Reflect[T any]() *Descriptor {
	return FromJSONSchema(ReflectJSONSchema[T]())
}

// ReflectJSONSchema returns the raw JSON schema of T as produced by the
// jsonschema reflector, self-contained and without $refs.
func ReflectJSONSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	return reflector.Reflect(&v)
}

// FromJSONSchema converts a JSON schema into a descriptor. Object properties
// that are not listed as required become optional fields. Schemas without a
// recognised type are treated as free-form objects.
func FromJSONSchema(s *jsonschema.Schema) *Descriptor {
	if s == nil {
		return nil
	}
	d := &Descriptor{
		Description: s.Description,
		Enum:        s.Enum,
	}
	if s.Default != nil {
		d.Default = s.Default
		d.HasDefault = true
	}

	switch s.Type {
	case "string":
		d.Kind = KindString
	case "number":
		d.Kind = KindNumber
	case "integer":
		d.Kind = KindInteger
	case "boolean":
		d.Kind = KindBoolean
	case "array":
		d.Kind = KindArray
		d.Items = FromJSONSchema(s.Items)
	default:
		d.Kind = KindObject
		if s.Properties == nil {
			break
		}
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		d.Fields = NewFields()
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			field := FromJSONSchema(pair.Value)
			if !required[pair.Key] {
				field = Optional(field)
			}
			d.Fields.Set(pair.Key, field)
		}
	}
	return d
}

// ToJSONSchema renders a descriptor as a JSON schema. Optional fields are
// left out of the parent's required list; the optional wrapper itself has
// no JSON schema form.
func ToJSONSchema(d *Descriptor) *jsonschema.Schema {
	if d == nil {
		return &jsonschema.Schema{}
	}
	if d.IsOptional() {
		s := ToJSONSchema(d.Wrapped)
		if d.HasDefault && s.Default == nil {
			s.Default = d.Default
		}
		return s
	}

	s := &jsonschema.Schema{
		Type:        d.Kind.String(),
		Description: d.Description,
		Enum:        d.Enum,
	}
	if d.HasDefault {
		s.Default = d.Default
	}
	switch d.Kind {
	case KindArray:
		if d.Items != nil {
			s.Items = ToJSONSchema(d.Items)
		}
	case KindObject:
		s.Properties = jsonschema.NewProperties()
		if d.Fields == nil {
			break
		}
		for pair := d.Fields.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value == nil {
				continue
			}
			s.Properties.Set(pair.Key, ToJSONSchema(pair.Value))
			if !pair.Value.IsOptional() {
				s.Required = append(s.Required, pair.Key)
			}
		}
	case KindInvalid:
		s.Type = ""
	}
	return s
}

// Properties renders each field of a processed shape as a JSON schema,
// keyed by field name, in the form tool-server protocols expect for tool
// input properties.
func Properties(shape *Fields) map[string]any {
	props := make(map[string]any)
	if shape == nil {
		return props
	}
	for pair := shape.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = ToJSONSchema(pair.Value)
	}
	return props
}
