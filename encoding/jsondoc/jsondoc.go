// Package jsondoc converts between record streams and single whole JSON
// documents. Unlike the line-by-line Parser, these are one-shot conversions
// that buffer the entire document.
package jsondoc

import (
	"encoding/json"
	"io"

	"github.com/recordstream/ndjson"
	"github.com/recordstream/ndjson/internal/jsonvalue"
)

// DecodeArray reads one whole JSON document holding an array and returns its
// elements as records.
func DecodeArray(in io.Reader) ([]ndjson.Record, error) {
	var values []any
	if err := json.NewDecoder(in).Decode(&values); err != nil {
		return nil, err
	}
	records := make([]ndjson.Record, len(values))
	for i, v := range values {
		records[i] = v
	}
	return records, nil
}

// DecodeObject reads one whole JSON document holding an object and returns
// its values as records, with the corresponding key stored under keyField
// when keyField is not empty.
func DecodeObject(in io.Reader, keyField string) ([]ndjson.Record, error) {
	var values map[string]any
	if err := json.NewDecoder(in).Decode(&values); err != nil {
		return nil, err
	}
	records := make([]ndjson.Record, 0, len(values))
	for key, v := range values {
		if keyField != "" {
			fields, ok := v.(map[string]any)
			if !ok {
				return nil, &ndjson.Error{Kind: ndjson.ErrShape, Snippet: jsonvalue.String(v)}
			}
			fields[keyField] = key
			v = fields
		}
		records = append(records, v)
	}
	return records, nil
}

// EncodeArray writes the records as one JSON array document.
func EncodeArray(out io.Writer, records []ndjson.Record) error {
	values := make([]any, len(records))
	copy(values, records)
	return encode(out, values)
}

// EncodeObject writes the records as one JSON object document, keyed by the
// value of keyField on each record. Records without a truthy keyField value
// are rejected with an invalid shape error.
func EncodeObject(out io.Writer, records []ndjson.Record, keyField string) error {
	values := make(map[string]any, len(records))
	for _, record := range records {
		fields, ok := record.(map[string]any)
		if !ok {
			return &ndjson.Error{Kind: ndjson.ErrShape, Snippet: jsonvalue.String(record)}
		}
		key, ok := fields[keyField]
		if !ok || !jsonvalue.IsTruthy(key) {
			return &ndjson.Error{Kind: ndjson.ErrShape, Snippet: jsonvalue.String(record)}
		}
		values[jsonvalue.String(key)] = record
	}
	return encode(out, values)
}

// EncodeLines writes the records as newline-delimited JSON, one record per
// line. It is the inverse of feeding the input to a Parser with default
// options.
func EncodeLines(out io.Writer, records []ndjson.Record) error {
	for _, record := range records {
		data, err := jsonvalue.Encode(record)
		if err != nil {
			return err
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func encode(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
