package ndjson

import (
	"strconv"
	"time"
)

// Layouts tried in order by the built-in date coercion. The first match wins.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// castLiteralValue recognizes the case-sensitive literals "true", "false",
// "null", "undefined" and decimal numbers inside strings. Anything else
// passes through unchanged.
func castLiteralValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null", "undefined":
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return v
}

// castDateValue coerces strings that parse as a date/time into a time.Time.
func castDateValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return v
}

// castValue applies the cast step then the date step to one leaf value.
func (p *Parser) castValue(v any, info Info) (any, error) {
	var err error
	switch p.cfg.cast {
	case castLiteral:
		v = castLiteralValue(v)
	case castHook:
		v, err = p.cfg.castFn(v, info)
		if err != nil {
			return nil, err
		}
	}
	switch p.cfg.castDate {
	case castLiteral:
		v = castDateValue(v)
	case castHook:
		v, err = p.cfg.castDateFn(v, info)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// castRecord walks one level deep into arrays and objects, casting each
// element; nested containers below the first level are left alone. A scalar
// record is cast directly.
func (p *Parser) castRecord(v any, info Info) (any, error) {
	if p.cfg.cast == castOff && p.cfg.castDate == castOff {
		return v, nil
	}
	var err error
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			if x[k], err = p.castValue(e, info); err != nil {
				return nil, err
			}
		}
		return x, nil
	case []any:
		for i, e := range x {
			if x[i], err = p.castValue(e, info); err != nil {
				return nil, err
			}
		}
		return x, nil
	default:
		return p.castValue(v, info)
	}
}
