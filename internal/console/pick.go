package console

import (
	"encoding/json"
	"io"
	"strings"
)

// Pick round-trips v through JSON and keeps only the requested top-level keys.
func Pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := m[k]; ok {
			out[k] = val
		}
	}
	return out
}

// ParseFields splits a --fields value ("a,b , c") into keys.
func ParseFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// WriteJSON prints v as indented JSON, projected onto fields when given.
func WriteJSON(w io.Writer, v any, fields []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(fields) == 0 {
		return enc.Encode(v)
	}
	return enc.Encode(Pick(v, fields...))
}

// WriteJSONList is WriteJSON for slices, projecting each element.
func WriteJSONList[T any](w io.Writer, items []T, fields []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(fields) == 0 {
		if items == nil {
			items = []T{}
		}
		return enc.Encode(items)
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, Pick(it, fields...))
	}
	return enc.Encode(out)
}
