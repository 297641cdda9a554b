// Package schema implements a one-pass structural validator for decoded
// records. A schema mirrors the shape of the values it accepts: type names at
// the leaves, maps for objects, single-element slices for homogeneous arrays.
// Validation holds no state across records.
package schema

import "fmt"

// A Type names one of the JSON value types a leaf can require.
type Type string

const (
	String  Type = "string"
	Number  Type = "number"
	Boolean Type = "boolean"
	Null    Type = "null"
	Object  Type = "object"
	Array   Type = "array"
	Any     Type = "any"
)

// A Schema describes the expected shape of a record:
//
//   - a Type accepts any value of that type
//   - an ObjectSchema accepts an object; every field named in the schema
//     must be present and validate against its sub-schema
//   - an ArraySchema accepts an array whose every element validates against
//     the element schema
//
// Build one with literals, e.g.:
//
//	schema.ObjectSchema{"id": schema.Number, "tags": schema.Of(schema.String)}
type Schema interface {
	validate(path string, v any) error
}

// ObjectSchema requires an object with the given fields.
type ObjectSchema map[string]Schema

// ArraySchema requires an array whose elements all match Elem.
type ArraySchema struct {
	Elem Schema
}

// Of returns a schema for an array of elem.
func Of(elem Schema) ArraySchema {
	return ArraySchema{Elem: elem}
}

// An Error reports the first value that did not match the schema, with the
// path that leads to it.
type Error struct {
	Path string // e.g. ".items[2].id", "" for the root
	Want string
	Got  any
}

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("invalid value at %s: want %s, got %v", path, e.Want, e.Got)
}

// Validate checks one record against the schema in a single recursive pass.
func Validate(s Schema, record any) error {
	return s.validate("", record)
}

func (t Type) validate(path string, v any) error {
	ok := false
	switch t {
	case String:
		_, ok = v.(string)
	case Number:
		_, ok = v.(float64)
	case Boolean:
		_, ok = v.(bool)
	case Null:
		ok = v == nil
	case Object:
		_, ok = v.(map[string]any)
	case Array:
		_, ok = v.([]any)
	case Any:
		ok = true
	}
	if !ok {
		return &Error{Path: path, Want: string(t), Got: v}
	}
	return nil
}

func (s ObjectSchema) validate(path string, v any) error {
	fields, ok := v.(map[string]any)
	if !ok {
		return &Error{Path: path, Want: "object", Got: v}
	}
	for name, sub := range s {
		value, present := fields[name]
		if !present {
			return &Error{Path: path + "." + name, Want: "present field", Got: nil}
		}
		if err := sub.validate(path+"."+name, value); err != nil {
			return err
		}
	}
	return nil
}

func (s ArraySchema) validate(path string, v any) error {
	values, ok := v.([]any)
	if !ok {
		return &Error{Path: path, Want: "array", Got: v}
	}
	if s.Elem == nil {
		return nil
	}
	for i, e := range values {
		if err := s.Elem.validate(fmt.Sprintf("%s[%d]", path, i), e); err != nil {
			return err
		}
	}
	return nil
}
