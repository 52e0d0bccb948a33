package model

import (
	"net/url"

	internalmodel "github.com/goliatone/go-dbform/internal/model"
)

// InputKind re-exports the internal InputKind enumeration.
type InputKind = internalmodel.InputKind

const (
	KindText           = internalmodel.KindText
	KindTextarea       = internalmodel.KindTextarea
	KindHidden         = internalmodel.KindHidden
	KindSelect         = internalmodel.KindSelect
	KindCheckbox       = internalmodel.KindCheckbox
	KindRadio          = internalmodel.KindRadio
	KindPassword       = internalmodel.KindPassword
	KindCheckboxSingle = internalmodel.KindCheckboxSingle
)

const (
	CurrentTimestamp = internalmodel.CurrentTimestamp
	AutoIncrement    = internalmodel.AutoIncrement
)

type ColumnMetadata = internalmodel.ColumnMetadata
type Descriptor = internalmodel.Descriptor
type Selection = internalmodel.Selection
type FormModel = internalmodel.FormModel
type TypeMap = internalmodel.TypeMap
type Value = internalmodel.Value
type Values = internalmodel.Values
type Logger = internalmodel.Logger

var (
	ErrUnknownColumnType = internalmodel.ErrUnknownColumnType
	ErrMalformedMetadata = internalmodel.ErrMalformedMetadata
	ErrUnknownColumn     = internalmodel.ErrUnknownColumn
	ErrDuplicateColumn   = internalmodel.ErrDuplicateColumn
	ErrUnknownInputKind  = internalmodel.ErrUnknownInputKind
)

// Scalar wraps a single string value.
func Scalar(value string) Value { return internalmodel.Scalar(value) }

// List wraps a list of string values.
func List(items ...string) Value { return internalmodel.List(items...) }

// ValuesFromMap coerces decoded JSON/YAML or database rows into Values.
func ValuesFromMap(raw map[string]any) (Values, error) { return internalmodel.ValuesFromMap(raw) }

// ValuesFromURL converts submitted form data; "name[]" keys become lists.
func ValuesFromURL(form url.Values) Values { return internalmodel.ValuesFromURL(form) }

// ParseInputKind resolves a kind name case-insensitively.
func ParseInputKind(raw string) (InputKind, bool) { return internalmodel.ParseInputKind(raw) }

// InputKinds lists every supported kind.
func InputKinds() []InputKind { return internalmodel.InputKinds() }

// DefaultTypeMap returns the shared base type table.
func DefaultTypeMap() TypeMap { return internalmodel.DefaultTypeMap() }

// LookupInputKind resolves a base type against the shared table.
func LookupInputKind(baseType string) (InputKind, bool) {
	return internalmodel.LookupInputKind(baseType)
}

// Sanitize applies the scalar merge escaping to raw.
func Sanitize(raw string) string { return internalmodel.Sanitize(raw) }

// Unsanitize reverses the escaping applied by Sanitize.
func Unsanitize(sanitized string) string { return internalmodel.Unsanitize(sanitized) }

// DefaultLabeler turns a column name into a title-cased label.
func DefaultLabeler(name string) string { return internalmodel.DefaultLabeler(name) }

// StringPtr returns a pointer to value, handy for ColumnMetadata.Default.
func StringPtr(value string) *string { return internalmodel.StringPtr(value) }
