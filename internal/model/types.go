package model

import "strings"

// InputKind is the form control chosen for a column.
type InputKind string

const (
	KindText           InputKind = "text"
	KindTextarea       InputKind = "textarea"
	KindHidden         InputKind = "hidden"
	KindSelect         InputKind = "select"
	KindCheckbox       InputKind = "checkbox"
	KindRadio          InputKind = "radio"
	KindPassword       InputKind = "password"
	KindCheckboxSingle InputKind = "checkboxSingle"
)

var inputKinds = []InputKind{
	KindText,
	KindTextarea,
	KindHidden,
	KindSelect,
	KindCheckbox,
	KindRadio,
	KindPassword,
	KindCheckboxSingle,
}

// InputKinds lists every supported input kind in declaration order.
func InputKinds() []InputKind {
	return append([]InputKind(nil), inputKinds...)
}

// ParseInputKind resolves a kind name case-insensitively, so "checkboxsingle"
// and "CheckboxSingle" both map to KindCheckboxSingle.
func ParseInputKind(raw string) (InputKind, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, kind := range inputKinds {
		if strings.EqualFold(trimmed, string(kind)) {
			return kind, true
		}
	}
	return "", false
}

// IsChoice reports whether the kind renders one control per choice.
func (k InputKind) IsChoice() bool {
	switch k {
	case KindSelect, KindCheckbox, KindRadio:
		return true
	default:
		return false
	}
}

// CurrentTimestamp is the choice-list sentinel held by datetime and timestamp
// columns. Hidden inputs fall back to it when no value was merged.
const CurrentTimestamp = "NOW()"

// AutoIncrement is the extra flag that forces a column into a hidden input.
const AutoIncrement = "auto_increment"

// ColumnMetadata is a single row of table metadata, shaped after the output
// of SHOW FULL COLUMNS. DeclaredType keeps any parenthesised suffix, e.g.
// varchar(255) or enum('a','b'). A nil Default represents SQL NULL.
type ColumnMetadata struct {
	Name         string  `json:"field" yaml:"field"`
	DeclaredType string  `json:"type" yaml:"type"`
	Nullable     bool    `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Default      *string `json:"default,omitempty" yaml:"default,omitempty"`
	Extra        string  `json:"extra,omitempty" yaml:"extra,omitempty"`
	Comment      string  `json:"comment,omitempty" yaml:"comment,omitempty"`
	Error        string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Selection pairs a choice-list candidate with its marked state.
type Selection struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Descriptor is the per-column form input record. It is built from
// ColumnMetadata, updated by value merges and caller overrides, and finally
// carries the rendered Markup once a renderer has run.
type Descriptor struct {
	Name         string      `json:"name"`
	Label        string      `json:"label,omitempty"`
	BaseType     string      `json:"baseType"`
	DeclaredType string      `json:"declaredType,omitempty"`
	Comment      string      `json:"comment,omitempty"`
	Nullable     bool        `json:"nullable"`
	Required     bool        `json:"required"`
	Default      *string     `json:"default,omitempty"`
	Extra        string      `json:"extra,omitempty"`
	Kind         InputKind   `json:"kind"`
	Attributes   string      `json:"attributes,omitempty"`
	Choices      []string    `json:"choices,omitempty"`
	Value        string      `json:"value,omitempty"`
	Selections   []Selection `json:"selections,omitempty"`
	Assigned     bool        `json:"assigned,omitempty"`
	Error        string      `json:"error,omitempty"`
	Markup       string      `json:"markup,omitempty"`
}

// DefaultValue returns the column default and whether one is set.
func (d *Descriptor) DefaultValue() (string, bool) {
	if d == nil || d.Default == nil {
		return "", false
	}
	return *d.Default, true
}

// SelectedValues returns the marked candidates in choice-list order.
func (d *Descriptor) SelectedValues() []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, sel := range d.Selections {
		if sel.Selected {
			out = append(out, sel.Value)
		}
	}
	return out
}

// Clone returns a deep copy of the descriptor.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.Default != nil {
		def := *d.Default
		out.Default = &def
	}
	out.Choices = append([]string(nil), d.Choices...)
	out.Selections = append([]Selection(nil), d.Selections...)
	return out
}

// StringPtr is a small helper for building metadata with defaults.
func StringPtr(value string) *string {
	return &value
}
