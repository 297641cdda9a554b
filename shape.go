package ndjson

import "github.com/recordstream/ndjson/internal/jsonvalue"

// shapeRecord applies the post-cast record shaping steps in order: the
// empty-values filter, the OnRecord hook, Info/Raw enrichment and Objname
// nesting. It reports whether the record was discarded.
func (p *Parser) shapeRecord(record any, raw string) (Record, bool, error) {
	if p.cfg.skipEmptyValues && jsonvalue.AllLeavesEmpty(record) {
		return nil, true, nil
	}
	if p.cfg.onRecord != nil {
		replaced, err := p.cfg.onRecord(record, p.snapshot())
		if err != nil {
			return nil, false, err
		}
		if replaced == nil {
			return nil, true, nil
		}
		record = replaced
	}
	out := record
	if p.cfg.info || p.cfg.raw {
		wrapper := map[string]any{"record": record}
		if p.cfg.info {
			wrapper["info"] = p.snapshot()
		}
		if p.cfg.raw {
			wrapper["raw"] = raw
		}
		out = wrapper
	}
	if p.cfg.objname != "" {
		// The key comes from the record itself, before enrichment.
		if fields, ok := record.(map[string]any); ok {
			if key, ok := fields[p.cfg.objname]; ok && jsonvalue.IsTruthy(key) {
				out = map[string]any{jsonvalue.String(key): out}
			}
		}
	}
	return out, false, nil
}
