package api

import (
	"graze/internal/resource"
	"graze/internal/sanitize"
	"graze/internal/store"
)

// serialize produces the outward representation of a stored row. Every text
// column passes through the sanitizer; stored rows keep the raw payload and
// only the response is cleansed. Non-string values pass through unchanged.
func serialize(d resource.Descriptor, rec store.Record) map[string]any {
	out := make(map[string]any, len(rec))
	for _, c := range d.Columns {
		value := rec[c.Name]
		if c.Kind == resource.Text {
			if s, ok := value.(string); ok {
				out[c.Name] = sanitize.Clean(s)
				continue
			}
		}
		out[c.Name] = value
	}
	return out
}

func serializeAll(d resource.Descriptor, recs []store.Record) []map[string]any {
	out := make([]map[string]any, len(recs))
	for i, rec := range recs {
		out[i] = serialize(d, rec)
	}
	return out
}
