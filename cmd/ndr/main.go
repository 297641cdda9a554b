package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/recordstream/ndjson"
	ndcsv "github.com/recordstream/ndjson/encoding/csv"
	"github.com/recordstream/ndjson/encoding/jsondoc"
	"github.com/recordstream/ndjson/schema"
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom of main).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
		}
	}()

	var filename string
	var inputFormat, outputFormat string
	var indent int
	var verbose bool
	var colorizer *Colorizer

	if isatty.IsTerminal(os.Stdout.Fd()) {
		colorizer = &defaultColorizer
	}

	flag.BoolFunc("colors", "force using colors", func(s string) error {
		colorizer = &defaultColorizer
		return nil
	})
	flag.BoolFunc("nocolors", "disable colors", func(s string) error {
		colorizer = nil
		return nil
	})

	flag.StringVar(&filename, "file", "", "input filename (stdin if omitted)")
	flag.StringVar(&inputFormat, "in", "ndjson", "input format: ndjson, csv or array")
	flag.StringVar(&outputFormat, "out", "ndjson", "output format: ndjson, array or csv")
	flag.IntVar(&indent, "indent", -1, "indent step for record output (negative means one line per record)")
	flag.BoolVar(&verbose, "verbose", false, "log pipeline debug output to stderr")

	var lenient, skipErrors, keepEmptyLines bool
	var maxLineLength int
	var header, cast, castDate bool
	var columnsArg, objname, requireArg string
	var from, to, fromLine, toLine int
	var trim, ltrim, rtrim bool
	var info, raw, skipEmptyValues bool

	flag.BoolVar(&lenient, "lenient", false, "skip lines with errors instead of stopping")
	flag.BoolVar(&skipErrors, "skip-errors", false, "silently skip lines with errors")
	flag.BoolVar(&keepEmptyLines, "keep-empty-lines", false, "do not drop blank lines")
	flag.IntVar(&maxLineLength, "max-line-length", 0, "maximum line length in bytes (0 means unbounded)")
	flag.BoolVar(&header, "header", false, "treat the first value as a header of column names")
	flag.StringVar(&columnsArg, "columns", "", "comma-separated column names for array records")
	flag.BoolVar(&cast, "cast", false, "cast string literals to booleans, nulls and numbers")
	flag.BoolVar(&castDate, "cast-date", false, "cast date/time strings to timestamps")
	flag.IntVar(&from, "from", 0, "emit records starting from this 1-based index")
	flag.IntVar(&to, "to", 0, "stop after this 1-based record index")
	flag.IntVar(&fromLine, "from-line", 0, "process lines starting from this 1-based index")
	flag.IntVar(&toLine, "to-line", 0, "stop after this 1-based line index")
	flag.BoolVar(&trim, "trim", false, "trim whitespace from both ends of each line")
	flag.BoolVar(&ltrim, "ltrim", false, "trim leading whitespace from each line")
	flag.BoolVar(&rtrim, "rtrim", false, "trim trailing whitespace from each line")
	flag.BoolVar(&info, "info", false, "wrap each record with a counters snapshot")
	flag.BoolVar(&raw, "raw", false, "wrap each record with its original line text")
	flag.StringVar(&objname, "objname", "", "key each output by the value of this field")
	flag.BoolVar(&skipEmptyValues, "skip-empty-values", false, "drop records whose values are all empty")
	flag.StringVar(&requireArg, "require", "", "validate records against field:type pairs, e.g. id:number,name:string")
	flag.Parse()

	// Set up stdout for handling colors
	var stdout io.Writer = os.Stdout
	if colorizer != nil {
		stdout = colorable.NewColorableStdout()
	}

	// Open input file
	var input io.Reader
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			fatalError("error opening %q: %s", filename, err)
		}
		defer f.Close()
		input = f
	} else {
		input = os.Stdin
	}

	log := logr.Discard()
	if verbose {
		log = funcr.New(func(prefix, args string) {
			fmt.Fprintln(os.Stderr, prefix, args)
		}, funcr.Options{Verbosity: 1})
	}

	var opts []ndjson.Option
	if lenient {
		opts = append(opts, ndjson.WithStrict(false))
	}
	if skipErrors {
		opts = append(opts, ndjson.WithSkipRecordsWithError())
	}
	if keepEmptyLines {
		opts = append(opts, ndjson.WithSkipEmptyLines(false))
	}
	if maxLineLength > 0 {
		opts = append(opts, ndjson.WithMaxLineLength(maxLineLength))
	}
	if header {
		opts = append(opts, ndjson.WithHeader())
	}
	if columnsArg != "" {
		opts = append(opts, ndjson.WithColumns(strings.Split(columnsArg, ",")...))
	}
	if cast {
		opts = append(opts, ndjson.WithCast())
	}
	if castDate {
		opts = append(opts, ndjson.WithCastDate())
	}
	if from > 0 {
		opts = append(opts, ndjson.WithFrom(from))
	}
	if to > 0 {
		opts = append(opts, ndjson.WithTo(to))
	}
	if fromLine > 0 {
		opts = append(opts, ndjson.WithFromLine(fromLine))
	}
	if toLine > 0 {
		opts = append(opts, ndjson.WithToLine(toLine))
	}
	if trim {
		opts = append(opts, ndjson.WithTrim())
	}
	if ltrim {
		opts = append(opts, ndjson.WithLTrim())
	}
	if rtrim {
		opts = append(opts, ndjson.WithRTrim())
	}
	if info {
		opts = append(opts, ndjson.WithInfo())
	}
	if raw {
		opts = append(opts, ndjson.WithRaw())
	}
	if objname != "" {
		opts = append(opts, ndjson.WithObjname(objname))
	}
	if skipEmptyValues {
		opts = append(opts, ndjson.WithSkipRecordsWithEmptyValues())
	}
	opts = append(opts, ndjson.WithLogger(log))

	var validator schema.Schema
	if requireArg != "" {
		var err error
		validator, err = parseRequire(requireArg)
		if err != nil {
			fatalError("error: %s", err)
		}
	}

	records, err := readRecords(input, inputFormat, header, opts)
	if err != nil && len(records) == 0 {
		fatalError("error: %s", err)
	}

	if validator != nil {
		for _, record := range records {
			if verr := schema.Validate(validator, record); verr != nil {
				fatalError("error: %s", verr)
			}
		}
	}

	werr := writeRecords(stdout, records, outputFormat, indent, colorizer)
	if werr != nil {
		if errors.Is(werr, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return
		}
		fatalError("error: %s", werr)
	}
	if err != nil {
		fatalError("error: %s", err)
	}
}

func readRecords(input io.Reader, format string, header bool, opts []ndjson.Option) ([]ndjson.Record, error) {
	switch format {
	case "ndjson":
		return ndjson.NewDecoder(input, opts...).All()
	case "csv":
		decoder := ndcsv.NewDecoder(input)
		decoder.HasHeader = header
		return decoder.ReadAll()
	case "array":
		return jsondoc.DecodeArray(input)
	default:
		return nil, fmt.Errorf("invalid input format: %q", format)
	}
}

func writeRecords(out io.Writer, records []ndjson.Record, format string, indent int, colorizer *Colorizer) error {
	switch format {
	case "ndjson":
		p := &printer{writer: out, indentSize: indent, colorizer: colorizer}
		for _, record := range records {
			if err := p.printRecord(record); err != nil {
				return err
			}
		}
		return nil
	case "array":
		return jsondoc.EncodeArray(out, records)
	case "csv":
		encoder := ndcsv.NewEncoder(out)
		encoder.Header = true
		for _, record := range records {
			if err := encoder.Write(record); err != nil {
				return err
			}
		}
		return encoder.Flush()
	default:
		return fmt.Errorf("invalid output format: %q", format)
	}
}

// parseRequire builds an object schema from "field:type" pairs.
func parseRequire(arg string) (schema.Schema, error) {
	fields := schema.ObjectSchema{}
	for _, pair := range strings.Split(arg, ",") {
		name, typeName, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("invalid require pair %q", pair)
		}
		switch t := schema.Type(typeName); t {
		case schema.String, schema.Number, schema.Boolean, schema.Null, schema.Object, schema.Array, schema.Any:
			fields[name] = t
		default:
			return nil, fmt.Errorf("invalid type %q in require pair %q", typeName, pair)
		}
	}
	return fields, nil
}

func fatalError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg, args...)
	os.Exit(1)
}

// Some color ANSI codes
var (
	Reset = []byte("\033[0m")

	Yellow = []byte("\033[33m")
	Green  = []byte("\033[32m")
	White  = []byte("\033[37m")

	DimWhite   = []byte("\033[37;2m")
	BrightBlue = []byte("\033[34;1m")
)

var defaultColorizer = Colorizer{
	KeyColorCode:     BrightBlue,
	StringColorCode:  Green,
	NumberColorCode:  Yellow,
	LiteralColorCode: DimWhite,
	ResetCode:        Reset,
}
