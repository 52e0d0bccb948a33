package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// FormModel is the ordered collection of descriptors built from one table's
// metadata. A FormModel is owned by a single caller and is not safe for
// concurrent mutation.
type FormModel struct {
	// Populated is set when the model was built with a value source. It
	// decides whether choice inputs reflect merged selections or the column
	// defaults.
	Populated bool

	order       []string
	descriptors map[string]*Descriptor
	excluded    map[string]struct{}

	labeler func(string) string
	logger  Logger
}

func newFormModel(capacity int) *FormModel {
	return &FormModel{
		order:       make([]string, 0, capacity),
		descriptors: make(map[string]*Descriptor, capacity),
		excluded:    make(map[string]struct{}),
		labeler:     DefaultLabeler,
		logger:      nopLogger{},
	}
}

func (f *FormModel) insert(descriptor *Descriptor) {
	f.order = append(f.order, descriptor.Name)
	f.descriptors[descriptor.Name] = descriptor
}

// Len returns the number of descriptors in the model.
func (f *FormModel) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Names returns the column names in model order.
func (f *FormModel) Names() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.order...)
}

// Descriptors returns the descriptors in model order. The pointers are live:
// changes made through them are visible to renderers.
func (f *FormModel) Descriptors() []*Descriptor {
	if f == nil {
		return nil
	}
	out := make([]*Descriptor, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.descriptors[name])
	}
	return out
}

// Descriptor returns the descriptor for name.
func (f *FormModel) Descriptor(name string) (*Descriptor, bool) {
	if f == nil {
		return nil, false
	}
	descriptor, ok := f.descriptors[name]
	return descriptor, ok
}

// Excluded returns the excluded column names sorted alphabetically.
func (f *FormModel) Excluded() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.excluded))
	for name := range f.excluded {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// IsExcluded reports whether name was removed through Exclude.
func (f *FormModel) IsExcluded(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.excluded[name]
	return ok
}

// Exclude removes columns from the model. Names that are not present are
// still remembered as excluded so later lookups stay consistent.
func (f *FormModel) Exclude(names ...string) {
	for _, name := range names {
		if _, done := f.excluded[name]; done {
			continue
		}
		f.excluded[name] = struct{}{}
		if _, ok := f.descriptors[name]; !ok {
			continue
		}
		delete(f.descriptors, name)
		f.order = slices.DeleteFunc(f.order, func(existing string) bool {
			return existing == name
		})
	}
}

// Add appends a descriptor at the end of the model. Adding a previously
// excluded name clears the exclusion.
func (f *FormModel) Add(descriptor Descriptor) error {
	name := strings.TrimSpace(descriptor.Name)
	if name == "" {
		return fmt.Errorf("%w: descriptor name is required", ErrMalformedMetadata)
	}
	if _, exists := f.descriptors[name]; exists {
		return fmt.Errorf("%w %q", ErrDuplicateColumn, name)
	}
	if descriptor.Kind == "" {
		descriptor.Kind = KindText
	}
	if descriptor.Label == "" {
		descriptor.Label = f.labeler(name)
	}
	added := descriptor.Clone()
	added.Name = name
	delete(f.excluded, name)
	f.insert(&added)
	return nil
}

// SetKind overrides the input kind of a column.
func (f *FormModel) SetKind(name string, kind InputKind) error {
	descriptor, err := f.lookup(name)
	if err != nil {
		return err
	}
	if _, ok := ParseInputKind(string(kind)); !ok {
		return fmt.Errorf("%w %q", ErrUnknownInputKind, kind)
	}
	descriptor.Kind = kind
	return nil
}

// SetAttributes replaces the extra markup attributes of a column. The string
// is emitted verbatim inside the control tag.
func (f *FormModel) SetAttributes(name, attributes string) error {
	descriptor, err := f.lookup(name)
	if err != nil {
		return err
	}
	descriptor.Attributes = strings.TrimSpace(attributes)
	return nil
}

// SetLabel replaces the generated label of a column.
func (f *FormModel) SetLabel(name, label string) error {
	descriptor, err := f.lookup(name)
	if err != nil {
		return err
	}
	descriptor.Label = label
	return nil
}

// SetValue assigns a value to a single column through the merger. It does
// not change Populated.
func (f *FormModel) SetValue(name string, value Value) error {
	return f.Merge(name, value)
}

func (f *FormModel) lookup(name string) (*Descriptor, error) {
	if f == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	descriptor, ok := f.descriptors[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return descriptor, nil
}

type formModelJSON struct {
	Populated bool          `json:"populated"`
	Fields    []*Descriptor `json:"fields"`
	Excluded  []string      `json:"excluded,omitempty"`
}

// MarshalJSON encodes the model as {populated, fields, excluded} with fields
// in model order.
func (f *FormModel) MarshalJSON() ([]byte, error) {
	return json.Marshal(formModelJSON{
		Populated: f.Populated,
		Fields:    f.Descriptors(),
		Excluded:  f.Excluded(),
	})
}
