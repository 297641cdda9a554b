package ndjson

import "github.com/go-logr/logr"

// columnsMode says where column names for array records come from.
type columnsMode int

const (
	columnsOff      columnsMode = iota
	columnsHeader               // learned from the first decoded value
	columnsExplicit             // fixed list given at construction
	columnsFunc                 // derived from the first decoded value by a hook
)

// castMode says how values are coerced after decoding.
type castMode int

const (
	castOff     castMode = iota
	castLiteral          // built-in literal recognition
	castHook             // user-supplied function
)

type config struct {
	strict         bool
	skipEmptyLines bool
	maxLineLength  int // 0 means unbounded

	columns     columnsMode
	columnNames []string
	columnsFn   ColumnsFunc

	from, to         int // 1-based record window, 0 means unset
	fromLine, toLine int // 1-based line window, 0 means unset

	cast       castMode
	castFn     CastFunc
	castDate   castMode
	castDateFn CastFunc

	ltrim, rtrim, trim bool

	onRecord RecordFunc
	onSkip   SkipFunc
	reviver  ReviverFunc

	info, raw bool
	objname   string

	skipEmptyValues bool
	skipErrors      bool

	log logr.Logger
}

func defaultConfig() config {
	return config{
		strict:         true,
		skipEmptyLines: true,
		log:            logr.Discard(),
	}
}

// Option is a function that configures a Parser.
type Option func(*config)

// WithStrict sets whether a line-level error halts the whole run. The
// default is true.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithSkipEmptyLines sets whether blank lines are dropped before decoding.
// The default is true.
func WithSkipEmptyLines(skip bool) Option {
	return func(c *config) {
		c.skipEmptyLines = skip
	}
}

// WithMaxLineLength bounds the length of a single line in bytes. Lines longer
// than n are reported as "line length exceeded". The default is unbounded.
func WithMaxLineLength(n int) Option {
	return func(c *config) {
		c.maxLineLength = n
	}
}

// WithHeader makes the first decoded value of the run serve as the column
// names for subsequent array records. The header value itself produces no
// record.
func WithHeader() Option {
	return func(c *config) {
		c.columns = columnsHeader
	}
}

// WithColumns zips every decoded array record against the given names.
// Positions past the end of an array map to null.
func WithColumns(names ...string) Option {
	return func(c *config) {
		c.columns = columnsExplicit
		c.columnNames = names
	}
}

// WithColumnsFunc derives the column names from the first decoded value of
// the run, which produces no record.
func WithColumnsFunc(fn ColumnsFunc) Option {
	return func(c *config) {
		c.columns = columnsFunc
		c.columnsFn = fn
	}
}

// WithFrom discards records before the n-th one (1-based, inclusive).
func WithFrom(n int) Option {
	return func(c *config) {
		c.from = n
	}
}

// WithTo stops the run after the n-th record (1-based, inclusive).
func WithTo(n int) Option {
	return func(c *config) {
		c.to = n
	}
}

// WithFromLine discards lines before the n-th one (1-based, inclusive),
// without attempting to decode them.
func WithFromLine(n int) Option {
	return func(c *config) {
		c.fromLine = n
	}
}

// WithToLine stops the run after the n-th line (1-based, inclusive).
func WithToLine(n int) Option {
	return func(c *config) {
		c.toLine = n
	}
}

// WithCast coerces string leaves that spell a boolean, null, undefined or
// number literal into the corresponding value.
func WithCast() Option {
	return func(c *config) {
		c.cast = castLiteral
	}
}

// WithCastFunc replaces every leaf value with the result of fn.
func WithCastFunc(fn CastFunc) Option {
	return func(c *config) {
		c.cast = castHook
		c.castFn = fn
	}
}

// WithCastDate coerces string leaves that parse as a date/time into a
// time.Time. It runs after the Cast step, on the possibly already cast value.
func WithCastDate() Option {
	return func(c *config) {
		c.castDate = castLiteral
	}
}

// WithCastDateFunc replaces the date-coercion step with fn.
func WithCastDateFunc(fn CastFunc) Option {
	return func(c *config) {
		c.castDate = castHook
		c.castDateFn = fn
	}
}

// WithLTrim strips leading whitespace from lines before decoding.
func WithLTrim() Option {
	return func(c *config) {
		c.ltrim = true
	}
}

// WithRTrim strips trailing whitespace from lines before decoding.
func WithRTrim() Option {
	return func(c *config) {
		c.rtrim = true
	}
}

// WithTrim strips whitespace from both ends of lines before decoding. It
// subsumes WithLTrim and WithRTrim.
func WithTrim() Option {
	return func(c *config) {
		c.trim = true
	}
}

// WithOnRecord installs a hook called with each record before it is emitted.
func WithOnRecord(fn RecordFunc) Option {
	return func(c *config) {
		c.onRecord = fn
	}
}

// WithOnSkip installs a hook called with each line-level error instead of
// raising or silently dropping it. When set, no line-level error is ever
// fatal except a buffer overflow.
func WithOnSkip(fn SkipFunc) Option {
	return func(c *config) {
		c.onSkip = fn
	}
}

// WithReviver applies fn bottom-up to every decoded value before column
// mapping and casting.
func WithReviver(fn ReviverFunc) Option {
	return func(c *config) {
		c.reviver = fn
	}
}

// WithInfo wraps every emitted record in a map carrying a counters snapshot
// under "info" and the record under "record".
func WithInfo() Option {
	return func(c *config) {
		c.info = true
	}
}

// WithRaw wraps every emitted record in a map carrying the original line text
// under "raw" and the record under "record".
func WithRaw() Option {
	return func(c *config) {
		c.raw = true
	}
}

// WithObjname wraps each output in a single-entry map keyed by the value of
// the named field, when that field is present and truthy on the record.
func WithObjname(name string) Option {
	return func(c *config) {
		c.objname = name
	}
}

// WithSkipRecordsWithEmptyValues discards records whose leaf values are all
// null or empty strings.
func WithSkipRecordsWithEmptyValues() Option {
	return func(c *config) {
		c.skipEmptyValues = true
	}
}

// WithSkipRecordsWithError silently skips lines that fail, instead of
// raising in strict mode.
func WithSkipRecordsWithError() Option {
	return func(c *config) {
		c.skipErrors = true
	}
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(log logr.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}
