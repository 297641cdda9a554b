package schema

import (
	"strings"
	"testing"
)

func decodedRecord() map[string]any {
	return map[string]any{
		"id":     1.0,
		"name":   "Alice",
		"active": true,
		"tags":   []any{"a", "b"},
		"meta":   map[string]any{"score": 2.5},
	}
}

func TestValidateTypes(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		value  any
		ok     bool
	}{
		{"string ok", String, "x", true},
		{"string not ok", String, 1.0, false},
		{"number ok", Number, 1.0, true},
		{"number not ok", Number, "1", false},
		{"boolean ok", Boolean, true, true},
		{"null ok", Null, nil, true},
		{"null not ok", Null, "null", false},
		{"object ok", Object, map[string]any{}, true},
		{"array ok", Array, []any{}, true},
		{"any accepts anything", Any, map[string]any{"x": 1.0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schema, tt.value)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestValidateObject(t *testing.T) {
	s := ObjectSchema{
		"id":   Number,
		"name": String,
		"tags": Of(String),
		"meta": ObjectSchema{"score": Number},
	}
	if err := Validate(s, decodedRecord()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestValidateMissingField(t *testing.T) {
	err := Validate(ObjectSchema{"missing": Any}, decodedRecord())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), ".missing") {
		t.Fatalf("expected the path in %q", err)
	}
}

func TestValidateNestedPath(t *testing.T) {
	s := ObjectSchema{"tags": Of(Number)}
	err := Validate(s, decodedRecord())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), ".tags[0]") {
		t.Fatalf("expected the element path in %q", err)
	}
}

func TestValidateExtraFieldsAllowed(t *testing.T) {
	if err := Validate(ObjectSchema{"id": Number}, decodedRecord()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestValidateRootMismatch(t *testing.T) {
	err := Validate(ObjectSchema{}, "not an object")
	validationErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected a schema error, got %v", err)
	}
	if validationErr.Path != "" {
		t.Fatalf("expected the root path, got %q", validationErr.Path)
	}
}
