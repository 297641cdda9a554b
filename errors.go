package ndjson

import (
	"fmt"
	"unicode/utf8"
)

// ErrorKind discriminates the failure conditions the pipeline can report.
type ErrorKind int

const (
	// ErrDecode means a line did not contain a valid JSON value.
	ErrDecode ErrorKind = iota

	// ErrLineTooLong means a line exceeded the configured maximum length.
	ErrLineTooLong

	// ErrBufferOverflow means the unterminated tail grew past ten times the
	// maximum line length. It is always fatal, whatever the error options.
	ErrBufferOverflow

	// ErrShape is reported by the converter packages when a record does not
	// have the shape the conversion requires. The Parser itself never
	// raises it.
	ErrShape
)

func (k ErrorKind) String() string {
	switch k {
	case ErrDecode:
		return "invalid JSON"
	case ErrLineTooLong:
		return "line length exceeded"
	case ErrBufferOverflow:
		return "buffer overflow"
	case ErrShape:
		return "invalid shape"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// An Error describes one failure condition, naming the kind of failure, the
// 1-based line it occurred on and a bounded prefix of the offending text.
type Error struct {
	Kind    ErrorKind
	Line    int    // 1-based, 0 when not tied to a line
	Snippet string // bounded prefix of the offending text, possibly empty
	Cause   error  // underlying decode error, if any
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Snippet != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Snippet)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// maxSnippetLen bounds the length of text quoted in error messages so that a
// pathological line cannot blow up the error itself.
const maxSnippetLen = 80

func snippet(line string) string {
	if len(line) <= maxSnippetLen {
		return line
	}
	// Back off to a rune boundary so the cut never produces invalid UTF-8.
	cut := maxSnippetLen
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut] + "..."
}
