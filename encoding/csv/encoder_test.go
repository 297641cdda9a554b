package csv

import (
	"errors"
	"strings"
	"testing"

	"github.com/recordstream/ndjson"
)

func TestEncoderObjects(t *testing.T) {
	var out strings.Builder
	encoder := NewEncoder(&out)
	encoder.Header = true
	records := []any{
		map[string]any{"name": "Alice", "age": 30.0},
		map[string]any{"name": "Bob"},
	}
	for _, record := range records {
		if err := encoder.Write(record); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if err := encoder.Flush(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "age,name\n30,Alice\n,Bob\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestEncoderExplicitColumns(t *testing.T) {
	var out strings.Builder
	encoder := NewEncoder(&out)
	encoder.Columns = []string{"b", "a"}
	if err := encoder.Write(map[string]any{"a": 1.0, "b": 2.0, "ignored": 3.0}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := encoder.Flush(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "2,1\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestEncoderArrays(t *testing.T) {
	var out strings.Builder
	encoder := NewEncoder(&out)
	if err := encoder.Write([]any{1.0, "x", nil, true}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := encoder.Flush(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "1,x,,true\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestEncoderRejectsScalars(t *testing.T) {
	encoder := NewEncoder(&strings.Builder{})
	err := encoder.Write(5.0)
	var shapeErr *ndjson.Error
	if !errors.As(err, &shapeErr) || shapeErr.Kind != ndjson.ErrShape {
		t.Fatalf("expected an invalid shape error, got %v", err)
	}
}
