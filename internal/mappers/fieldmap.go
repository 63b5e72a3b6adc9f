package mappers

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"crub-courses/internal/sources"
)

// Table maps a source field name (as the external system spells it) to a canonical
// attribute name.
type Table map[string]string

// FieldMap is a Table with normalized keys, ready to apply to raw records.
type FieldMap struct {
	fields map[string]string
}

// normalizeKey trims and NFC-normalizes a field name so "Período" matches whether the
// accent arrives precomposed or as a combining mark.
func normalizeKey(k string) string {
	return norm.NFC.String(strings.TrimSpace(k))
}

func NewFieldMap(t Table) *FieldMap {
	m := &FieldMap{fields: make(map[string]string, len(t))}
	m.Merge(t)
	return m
}

// Merge adds or replaces entries. An empty canonical name removes the source field.
func (m *FieldMap) Merge(t Table) {
	for src, canon := range t {
		k := normalizeKey(src)
		if canon == "" {
			delete(m.fields, k)
			continue
		}
		m.fields[k] = canon
	}
}

// Apply projects a raw record onto canonical attributes. Unknown fields are dropped.
func (m *FieldMap) Apply(rec sources.Record) Row {
	row := make(Row, len(m.fields))
	for k, v := range rec {
		if canon, ok := m.fields[normalizeKey(k)]; ok {
			row[canon] = v
		}
	}
	return row
}

// Row is a record keyed by canonical attribute.
type Row map[string]any

// String returns the attribute as trimmed text. Numbers keep their JSON spelling.
func (r Row) String(attr string) string {
	v, ok := r[attr]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// Int returns the attribute as an int; ok is false when absent or not numeric.
func (r Row) Int(attr string) (int, bool) {
	v, ok := r[attr]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Overrides is the YAML layout of a field-map override file:
//
//	assignments:
//	  "Cod. SIU": course_code
//	designations: {}
//	details: {}
type Overrides struct {
	Assignments  Table `yaml:"assignments"`
	Designations Table `yaml:"designations"`
	Details      Table `yaml:"details"`
}

// LoadOverrides reads an override file.
func LoadOverrides(path string) (Overrides, error) {
	var o Overrides
	b, err := os.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("read field map %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &o); err != nil {
		return o, fmt.Errorf("parse field map %s: %w", path, err)
	}
	return o, nil
}
