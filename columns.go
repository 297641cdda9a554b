package ndjson

import (
	"sort"

	"github.com/recordstream/ndjson/internal/jsonvalue"
)

// learnHeader derives the column names from the first decoded value of a run.
// An array contributes its elements, stringified; an object contributes its
// keys, sorted for determinism; any other value contributes itself as a
// single name.
func learnHeader(v any) []string {
	switch x := v.(type) {
	case []any:
		names := make([]string, len(x))
		for i, e := range x {
			names[i] = jsonvalue.String(e)
		}
		return names
	case map[string]any:
		names := make([]string, 0, len(x))
		for k := range x {
			names = append(names, k)
		}
		sort.Strings(names)
		return names
	default:
		return []string{jsonvalue.String(v)}
	}
}

// zipColumns turns a decoded array into an object keyed by the given names.
// Positions past the end of the array map to null; array elements past the
// end of the names are dropped.
func zipColumns(names []string, values []any) map[string]any {
	record := make(map[string]any, len(names))
	for i, name := range names {
		if i < len(values) {
			record[name] = values[i]
		} else {
			record[name] = nil
		}
	}
	return record
}

// mapColumns applies the configured column handling to one decoded value.
// It reports whether the value was consumed as a header, in which case no
// record is produced.
func (p *Parser) mapColumns(v any) (any, bool, error) {
	switch p.cfg.columns {
	case columnsOff:
		return v, false, nil
	case columnsHeader:
		if !p.headerLearned {
			p.header = learnHeader(v)
			p.headerLearned = true
			p.cfg.log.V(1).Info("learned header", "columns", p.header)
			return nil, true, nil
		}
	case columnsFunc:
		if !p.headerLearned {
			names, err := p.cfg.columnsFn(v)
			if err != nil {
				return nil, false, err
			}
			p.header = names
			p.headerLearned = true
			p.cfg.log.V(1).Info("learned header", "columns", p.header)
			return nil, true, nil
		}
	case columnsExplicit:
		// No header consumption, the names are fixed.
	}
	values, ok := v.([]any)
	if !ok {
		return v, false, nil
	}
	names := p.header
	if p.cfg.columns == columnsExplicit {
		names = p.cfg.columnNames
	}
	return zipColumns(names, values), false, nil
}
