package model

import (
	"maps"
	"slices"
	"strings"
)

// TypeMap resolves a column base type to its default input kind. Values are
// immutable; With returns a modified copy so the shared default table is
// never written after initialisation.
type TypeMap struct {
	entries map[string]InputKind
}

var defaultTypeMap = TypeMap{entries: map[string]InputKind{
	"tinyint":    KindText,
	"smallint":   KindText,
	"mediumint":  KindText,
	"int":        KindText,
	"bigint":     KindText,
	"integer":    KindText,
	"real":       KindText,
	"double":     KindText,
	"decimal":    KindText,
	"float":      KindText,
	"numeric":    KindText,
	"char":       KindText,
	"varchar":    KindText,
	"date":       KindHidden,
	"time":       KindHidden,
	"datetime":   KindHidden,
	"timestamp":  KindHidden,
	"tinyblob":   KindText,
	"blob":       KindTextarea,
	"mediumblob": KindText,
	"longblob":   KindTextarea,
	"tinytext":   KindText,
	"text":       KindTextarea,
	"mediumtext": KindText,
	"longtext":   KindTextarea,
	"enum":       KindSelect,
	"set":        KindCheckbox,
	"bool":       KindCheckboxSingle,
	"boolean":    KindCheckboxSingle,
}}

// DefaultTypeMap returns the process-wide type table.
func DefaultTypeMap() TypeMap {
	return defaultTypeMap
}

// Lookup returns the input kind for baseType. Matching ignores case.
func (m TypeMap) Lookup(baseType string) (InputKind, bool) {
	kind, ok := m.entries[normalizeType(baseType)]
	return kind, ok
}

// With returns a copy of the map with overrides applied on top.
func (m TypeMap) With(overrides map[string]InputKind) TypeMap {
	if len(overrides) == 0 {
		return m
	}
	entries := make(map[string]InputKind, len(m.entries)+len(overrides))
	maps.Copy(entries, m.entries)
	for baseType, kind := range overrides {
		key := normalizeType(baseType)
		if key == "" {
			continue
		}
		entries[key] = kind
	}
	return TypeMap{entries: entries}
}

// Types returns the known base types sorted alphabetically.
func (m TypeMap) Types() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// LookupInputKind consults the default table.
func LookupInputKind(baseType string) (InputKind, bool) {
	return defaultTypeMap.Lookup(baseType)
}

func normalizeType(baseType string) string {
	return strings.ToLower(strings.TrimSpace(baseType))
}
