package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// A Colorizer holds the ANSI codes used to color printed values.
type Colorizer struct {
	KeyColorCode     []byte
	StringColorCode  []byte
	NumberColorCode  []byte
	LiteralColorCode []byte
	ResetCode        []byte
}

func (c *Colorizer) scalarColorCode(v any) []byte {
	switch v.(type) {
	case string:
		return c.StringColorCode
	case float64:
		return c.NumberColorCode
	default:
		return c.LiteralColorCode
	}
}

// A printer writes records as JSON text with optional indentation and
// colors. Scalar encoding is delegated to encoding/json; the printer only
// deals with layout.
type printer struct {
	writer     io.Writer
	indentSize int // negative means everything on one line
	colorizer  *Colorizer

	indentLevel int
	err         error
}

func (p *printer) printRecord(v any) error {
	p.printValue(v)
	p.printBytes([]byte{'\n'})
	return p.err
}

func (p *printer) printValue(v any) {
	switch x := v.(type) {
	case map[string]any:
		p.printObject(x)
	case []any:
		p.printArray(x)
	case time.Time:
		p.printScalar(x.Format(time.RFC3339Nano), p.colorString())
	default:
		p.printScalarValue(x)
	}
}

func (p *printer) printObject(fields map[string]any) {
	if len(fields) == 0 {
		p.printBytes([]byte("{}"))
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p.printBytes([]byte{'{'})
	p.indent()
	for i, k := range keys {
		if i > 0 {
			p.printBytes([]byte{','})
			p.newLine()
		}
		p.printScalar(k, p.colorKey())
		p.printBytes([]byte(": "))
		p.printValue(fields[k])
	}
	p.dedent()
	p.printBytes([]byte{'}'})
}

func (p *printer) printArray(values []any) {
	if len(values) == 0 {
		p.printBytes([]byte("[]"))
		return
	}
	p.printBytes([]byte{'['})
	p.indent()
	for i, e := range values {
		if i > 0 {
			p.printBytes([]byte{','})
			p.newLine()
		}
		p.printValue(e)
	}
	p.dedent()
	p.printBytes([]byte{']'})
}

func (p *printer) printScalarValue(v any) {
	var color []byte
	if p.colorizer != nil {
		color = p.colorizer.scalarColorCode(v)
	}
	p.printScalar(v, color)
}

func (p *printer) printScalar(v any, color []byte) {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprintf("%q", fmt.Sprint(v)))
	}
	if color != nil {
		p.printBytes(color)
	}
	p.printBytes(data)
	if color != nil && p.colorizer != nil {
		p.printBytes(p.colorizer.ResetCode)
	}
}

func (p *printer) colorKey() []byte {
	if p.colorizer == nil {
		return nil
	}
	return p.colorizer.KeyColorCode
}

func (p *printer) colorString() []byte {
	if p.colorizer == nil {
		return nil
	}
	return p.colorizer.StringColorCode
}

func (p *printer) indent() {
	p.indentLevel++
	p.newLine()
}

func (p *printer) dedent() {
	p.indentLevel--
	p.newLine()
}

func (p *printer) newLine() {
	if p.indentSize < 0 {
		return
	}
	p.printBytes([]byte{'\n'})
	for i := p.indentSize * p.indentLevel; i > 0; i-- {
		p.printBytes([]byte{' '})
	}
}

func (p *printer) printBytes(b []byte) {
	if p.err != nil {
		return
	}
	_, p.err = p.writer.Write(b)
}
