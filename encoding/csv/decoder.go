// Package csv converts between record streams and CSV documents. The CSV
// grammar itself (quoting, escaping) is delegated to the standard library
// encoding/csv package; this package only maps rows to and from records.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/recordstream/ndjson"
)

// A Decoder reads CSV input and produces one record per row.
type Decoder struct {
	reader *csv.Reader

	// HasHeader makes the first row serve as the field names. It produces
	// no record.
	HasHeader bool

	// Columns fixes the field names up front. When a row has more fields
	// than names, the extra fields get generated field_N names.
	Columns []string

	rowCount   int
	fieldNames []string
}

// NewDecoder sets up a new Decoder instance to read from the given input.
func NewDecoder(in io.Reader) *Decoder {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	return &Decoder{reader: reader}
}

// Read returns the record for the next CSV row, or io.EOF at the end of the
// input.
func (d *Decoder) Read() (ndjson.Record, error) {
	for {
		row, err := d.reader.Read()
		if err != nil {
			return nil, err
		}
		d.rowCount++
		if d.rowCount == 1 {
			if len(d.Columns) > 0 {
				d.fieldNames = d.Columns
			} else if d.HasHeader {
				d.fieldNames = row
				continue
			}
		}
		return d.rowToRecord(row), nil
	}
}

// ReadAll reads rows until the input is exhausted and returns the records.
func (d *Decoder) ReadAll() ([]ndjson.Record, error) {
	var records []ndjson.Record
	for {
		record, err := d.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

func (d *Decoder) rowToRecord(row []string) ndjson.Record {
	if d.fieldNames == nil {
		values := make([]any, len(row))
		for i, field := range row {
			values[i] = fieldToValue(field)
		}
		return values
	}
	record := make(map[string]any, len(row))
	for i, field := range row {
		record[d.fieldName(i)] = fieldToValue(field)
	}
	return record
}

func (d *Decoder) fieldName(i int) string {
	if i < len(d.fieldNames) {
		return d.fieldNames[i]
	}
	return fmt.Sprintf("field_%d", i+1)
}

// fieldToValue maps a CSV field to a record value: empty fields become null,
// boolean and numeric literals become their value, everything else stays a
// string.
func fieldToValue(field string) any {
	switch field {
	case "":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(field, 64); err == nil {
		return n
	}
	return field
}
