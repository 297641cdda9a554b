package csv

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/recordstream/ndjson"
	"github.com/recordstream/ndjson/internal/jsonvalue"
)

// An Encoder writes records out as CSV rows. Object records are written in
// column order; array records are written as-is. The column set is fixed by
// the first record (its keys, sorted) unless Columns is set before the first
// Write.
type Encoder struct {
	writer *csv.Writer

	// Columns fixes the columns and their order. When empty, the sorted
	// keys of the first object record are used.
	Columns []string

	// Header makes the first written row a header row with the column
	// names.
	Header bool

	started bool
}

// NewEncoder sets up a new Encoder instance to write to the given output.
func NewEncoder(out io.Writer) *Encoder {
	return &Encoder{writer: csv.NewWriter(out)}
}

// Write encodes one record as a CSV row. Records that are neither objects
// nor arrays are rejected with an invalid shape error.
func (e *Encoder) Write(record ndjson.Record) error {
	switch x := record.(type) {
	case map[string]any:
		if len(e.Columns) == 0 {
			e.Columns = sortedKeys(x)
		}
		if err := e.writeHeader(); err != nil {
			return err
		}
		row := make([]string, len(e.Columns))
		for i, name := range e.Columns {
			if value, ok := x[name]; ok && value != nil {
				row[i] = jsonvalue.String(value)
			}
		}
		return e.writer.Write(row)
	case []any:
		if err := e.writeHeader(); err != nil {
			return err
		}
		row := make([]string, len(x))
		for i, value := range x {
			if value != nil {
				row[i] = jsonvalue.String(value)
			}
		}
		return e.writer.Write(row)
	default:
		return &ndjson.Error{Kind: ndjson.ErrShape, Snippet: jsonvalue.String(record)}
	}
}

// Flush writes any buffered rows to the underlying writer.
func (e *Encoder) Flush() error {
	e.writer.Flush()
	return e.writer.Error()
}

func (e *Encoder) writeHeader() error {
	if e.started {
		return nil
	}
	e.started = true
	if !e.Header || len(e.Columns) == 0 {
		return nil
	}
	return e.writer.Write(e.Columns)
}

func sortedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
