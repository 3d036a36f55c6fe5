package schema

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotObject is returned by WithDefaults when the schema is not an
	// object-kind descriptor.
	ErrNotObject = errors.New("schema must be an object type")

	// ErrMalformed reports a fault found while walking a field mapping.
	ErrMalformed = errors.New("malformed schema")
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.Default().WithPrefix("schema"))
}

// SetLogger replaces the logger used for diagnostics. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

// Status tells how far Process got.
type Status int

const (
	// Complete means every field of the schema was processed.
	Complete Status = iota
	// Partial means a fault stopped processing; the result holds the
	// fields handled before it.
	Partial
	// Rejected means the input was not an object schema with a field
	// mapping; the result is empty.
	Rejected
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the processed shape of a schema: every field with one level of
// optional wrapping removed, plus the field names split by whether they
// were required.
type Result struct {
	Shape        *Fields
	Keys         []string
	RequiredKeys []string
	OptionalKeys []string

	Status Status
	// Err is set for Partial and Rejected results.
	Err error
}

func emptyResult(status Status, err error) Result {
	return Result{
		Shape:        NewFields(),
		Keys:         []string{},
		RequiredKeys: []string{},
		OptionalKeys: []string{},
		Status:       status,
		Err:          err,
	}
}

// Process flattens an object schema for consumers that do not understand
// optional wrappers. It never fails: non-object input yields an empty
// Rejected result and a fault while walking the fields yields the fields
// processed so far as a Partial result. Fields with a nil descriptor are
// skipped.
func Process(d *Descriptor) Result {
	if !d.IsObject() {
		logger.Load().Warn("schema is not an object type, returning empty schema", "kind", kindOf(d))
		return emptyResult(Rejected, fmt.Errorf("process: %w", ErrNotObject))
	}
	if d.Fields == nil {
		logger.Load().Warn("schema shape is undefined, returning empty schema")
		return emptyResult(Rejected, fmt.Errorf("process: %w: no field mapping", ErrMalformed))
	}

	res := emptyResult(Complete, nil)
	err := eachField(d.Fields, func(name string, field *Descriptor) error {
		if field == nil {
			return nil
		}
		if field.IsOptional() {
			if field.Wrapped == nil {
				return fmt.Errorf("%w: optional field %q wraps nothing", ErrMalformed, name)
			}
			res.Shape.Set(name, field.Wrapped)
			res.OptionalKeys = append(res.OptionalKeys, name)
		} else {
			res.Shape.Set(name, field)
			res.RequiredKeys = append(res.RequiredKeys, name)
		}
		res.Keys = append(res.Keys, name)
		return nil
	})
	if err != nil {
		logger.Load().Error("error processing schema", "err", err, "processed", len(res.Keys))
		res.Status = Partial
		res.Err = fmt.Errorf("process: %w", err)
	}
	return res
}

// Validate reports whether an object schema can be expressed by the
// tool-server wire format, which has no support for top-level array fields.
// Nested objects and optional-wrapped arrays are not inspected.
func Validate(d *Descriptor) bool {
	if !d.IsObject() || d.Fields == nil {
		return false
	}
	valid := true
	err := eachField(d.Fields, func(_ string, field *Descriptor) error {
		if field == nil {
			return nil
		}
		if field.IsArray() {
			valid = false
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		logger.Load().Error("error validating schema", "err", err)
		return false
	}
	return valid
}

// WithDefaults returns a copy of an object schema in which every optional
// field named in defaults carries that default value. It returns
// ErrNotObject for any other kind of schema. If the fields cannot be
// walked the original schema is returned unchanged.
func WithDefaults(d *Descriptor, defaults map[string]any) (*Descriptor, error) {
	if !d.IsObject() {
		return nil, fmt.Errorf("with defaults: %w (got %s)", ErrNotObject, kindOf(d))
	}
	if d.Fields == nil {
		return Object(), nil
	}

	fields := NewFields()
	err := eachField(d.Fields, func(name string, field *Descriptor) error {
		if field == nil {
			return nil
		}
		if v, ok := defaults[name]; ok && field.IsOptional() {
			fields.Set(name, field.withDefault(v))
			return nil
		}
		fields.Set(name, field)
		return nil
	})
	if err != nil {
		logger.Load().Error("error creating schema with defaults", "err", err)
		return d, nil
	}

	out := *d
	out.Fields = fields
	return &out, nil
}

var errStop = errors.New("stop")

// eachField walks fields in insertion order. A panic raised while walking
// is converted into an error so callers can degrade instead of crashing.
func eachField(fields *Fields, fn func(name string, field *Descriptor) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

func kindOf(d *Descriptor) Kind {
	if d == nil {
		return KindInvalid
	}
	return d.Kind
}
