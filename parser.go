package ndjson

import (
	"strings"
	"unicode"

	"go.uber.org/multierr"

	"github.com/recordstream/ndjson/internal/jsonvalue"
)

// A Parser turns arbitrarily chunked newline-delimited JSON input into a
// sequence of decoded records, applying the configured filtering, shaping and
// casting options line by line.
//
// A Parser performs no I/O and spawns no goroutines: the driver calls Feed
// with each chunk of input in arrival order, drains the records the call
// returns, and calls Finish exactly once when the input is exhausted. The
// sequence of records is the same however the input bytes are chunked. A
// Parser must not be used from more than one goroutine at a time.
type Parser struct {
	cfg config
	buf lineBuffer

	lines              int // physical lines seen, 1-based after increment
	records            int // records that survived shaping, 1-based after increment
	invalidFieldLength int // lines over the configured maximum length

	header        []string
	headerLearned bool

	stopped bool  // a line or record window was exhausted, input is ignored
	fatal   error // a fatal error was raised, the run is over
	skipped error
}

// NewParser returns a Parser configured with the given options.
func NewParser(opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{cfg: cfg}
}

// Feed delivers one chunk of input and returns the records it completed.
// Records already returned are never retracted: when Feed returns an error it
// may also return the records emitted before the failing line. After a fatal
// error every subsequent call returns the same error.
func (p *Parser) Feed(chunk []byte) ([]Record, error) {
	if p.fatal != nil {
		return nil, p.fatal
	}
	if p.stopped {
		return nil, nil
	}
	out, err := p.processLines(p.buf.push(chunk))
	if err != nil {
		return out, err
	}
	// The tail has no terminator, so nothing bounds it except this guard.
	// It applies even in lenient mode, but not once a window hard stop has
	// ended the run: whatever is left in the tail will never be consumed.
	if limit := p.cfg.maxLineLength; !p.stopped && limit > 0 && p.buf.size() > 10*limit {
		fatal := &Error{Kind: ErrBufferOverflow, Line: p.lines + 1}
		p.fatal = fatal
		return out, fatal
	}
	return out, nil
}

// Finish flushes the unterminated final line, if any, and returns whatever
// records it produced. It must be called exactly once, after the last Feed.
func (p *Parser) Finish() ([]Record, error) {
	if p.fatal != nil {
		return nil, p.fatal
	}
	line, ok := p.buf.flush()
	if !ok || p.stopped {
		return nil, nil
	}
	return p.processLines([]string{line})
}

// Info returns a snapshot of the pipeline counters.
func (p *Parser) Info() Info {
	return p.snapshot()
}

// SkippedErrors returns the line-level errors that were skipped over during
// the run, combined into one error, or nil if there were none.
func (p *Parser) SkippedErrors() error {
	return p.skipped
}

func (p *Parser) snapshot() Info {
	return Info{
		Lines:              p.lines,
		Records:            p.records,
		InvalidFieldLength: p.invalidFieldLength,
	}
}

func (p *Parser) processLines(lines []string) ([]Record, error) {
	var out []Record
	for _, line := range lines {
		record, emit, err := p.processLine(line)
		if err != nil {
			p.fatal = err
			return out, err
		}
		if emit {
			out = append(out, record)
		}
		if p.stopped {
			break
		}
	}
	return out, nil
}

// processLine runs one physical line through the whole pipeline. It reports
// whether the line produced a record. A non-nil error is fatal; line-level
// errors have already been run through the skip ladder at that point.
func (p *Parser) processLine(line string) (Record, bool, error) {
	p.lines++
	if p.cfg.fromLine > 0 && p.lines < p.cfg.fromLine {
		return nil, false, nil
	}
	if p.cfg.toLine > 0 && p.lines > p.cfg.toLine {
		p.cfg.log.V(1).Info("line window exhausted", "line", p.lines)
		p.stopped = true
		return nil, false, nil
	}
	if limit := p.cfg.maxLineLength; limit > 0 && len(line) > limit {
		p.invalidFieldLength++
		lineErr := &Error{Kind: ErrLineTooLong, Line: p.lines, Snippet: snippet(line)}
		return nil, false, p.skipOrRaise(lineErr, line)
	}
	text := line
	if p.cfg.skipEmptyLines && strings.TrimSpace(text) == "" {
		return nil, false, nil
	}
	if p.cfg.trim {
		text = strings.TrimSpace(text)
	} else {
		if p.cfg.ltrim {
			text = strings.TrimLeftFunc(text, unicode.IsSpace)
		}
		if p.cfg.rtrim {
			text = strings.TrimRightFunc(text, unicode.IsSpace)
		}
	}
	value, err := jsonvalue.Decode([]byte(text))
	if err != nil {
		lineErr := &Error{Kind: ErrDecode, Line: p.lines, Snippet: snippet(text), Cause: err}
		return nil, false, p.skipOrRaise(lineErr, line)
	}
	if p.cfg.reviver != nil {
		value = jsonvalue.Revive(value, p.cfg.reviver)
	}
	value, consumed, err := p.mapColumns(value)
	if err != nil {
		return nil, false, err
	}
	if consumed {
		return nil, false, nil
	}
	value, err = p.castRecord(value, p.snapshot())
	if err != nil {
		return nil, false, err
	}
	record, discarded, err := p.shapeRecord(value, line)
	if err != nil {
		return nil, false, err
	}
	if discarded {
		return nil, false, nil
	}
	p.records++
	if p.cfg.from > 0 && p.records < p.cfg.from {
		return nil, false, nil
	}
	if p.cfg.to > 0 && p.records > p.cfg.to {
		p.cfg.log.V(1).Info("record window exhausted", "record", p.records)
		p.stopped = true
		return nil, false, nil
	}
	return record, true, nil
}

// skipOrRaise applies the error policy to a line-level error: the OnSkip hook
// wins, then the skip-errors flag, then strict mode raises, otherwise the
// line is skipped silently.
func (p *Parser) skipOrRaise(lineErr *Error, raw string) error {
	switch {
	case p.cfg.onSkip != nil:
		p.cfg.onSkip(lineErr, raw)
	case p.cfg.skipErrors:
		// Skip silently.
	case p.cfg.strict:
		return lineErr
	}
	p.cfg.log.V(1).Info("skipped line", "line", lineErr.Line, "reason", lineErr.Kind.String())
	p.skipped = multierr.Append(p.skipped, lineErr)
	return nil
}
