package ndjson

// A Record is one decoded value emitted by the pipeline. Depending on the
// input line and the configured options it can be a map[string]any, a []any,
// a scalar, or a wrapper map produced by the Info, Raw or Objname options.
type Record = any

// Info is a read-only snapshot of the pipeline counters. It is passed to the
// OnRecord, CastFunc and CastDateFunc hooks and attached to emitted records
// when the Info option is set.
type Info struct {
	// Lines is the number of physical lines seen so far, including the
	// current one.
	Lines int `json:"lines"`

	// Records is the number of records emitted before the current one.
	Records int `json:"records"`

	// InvalidFieldLength is the number of lines so far that exceeded the
	// configured maximum line length.
	InvalidFieldLength int `json:"invalid_field_length"`
}

// RecordFunc is the OnRecord hook. Returning nil discards the record, any
// other value replaces it. A non-nil error halts the run.
type RecordFunc func(record Record, info Info) (Record, error)

// SkipFunc is the OnSkip hook, called with the error and the raw offending
// line whenever a line is skipped because of it.
type SkipFunc func(err error, line string)

// CastFunc computes the replacement for a value during casting. A non-nil
// error halts the run.
type CastFunc func(value any, info Info) (any, error)

// ColumnsFunc derives column names from the first decoded value of a run.
// A non-nil error halts the run.
type ColumnsFunc func(first any) ([]string, error)

// ReviverFunc is applied bottom-up to every decoded value before any other
// processing, like the reviver argument of a JSON parse primitive. The key is
// the object key or the decimal array index of the value, and "" at the root.
type ReviverFunc func(key string, value any) any
