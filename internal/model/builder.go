package model

import (
	"fmt"
	"strings"
)

// Builder converts column metadata into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.TypeMap != nil {
		opts.TypeMap = options.TypeMap
	}
	if options.DefaultKind != "" {
		opts.DefaultKind = options.DefaultKind
	}
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	return &Builder{opts: opts}
}

// Build synthesises one descriptor per column, in metadata order. When values
// is non-nil every column present in it is merged and the model is marked
// populated. Columns named in values but absent from the metadata fail with
// ErrUnknownColumn.
func (b *Builder) Build(columns []ColumnMetadata, values Values) (*FormModel, error) {
	if err := validateColumns(columns); err != nil {
		return nil, err
	}

	form := newFormModel(len(columns))
	form.labeler = b.opts.Labeler
	form.logger = b.opts.Logger

	for _, column := range columns {
		descriptor, err := b.Describe(column)
		if err != nil {
			return nil, err
		}
		form.insert(descriptor)
	}

	if values != nil {
		if err := form.MergeAll(values); err != nil {
			return nil, err
		}
		form.Populated = true
	}
	return form, nil
}

// Describe builds the descriptor for a single column without adding it to a
// model. Callers use it together with FormModel.Add.
func (b *Builder) Describe(column ColumnMetadata) (*Descriptor, error) {
	if err := validateColumns([]ColumnMetadata{column}); err != nil {
		return nil, err
	}

	baseType, suffix := splitDeclaredType(column.DeclaredType)
	kind, err := b.resolveKind(column.Name, baseType)
	if err != nil {
		return nil, err
	}
	if isAutoGenerated(column.Extra) {
		kind = KindHidden
	}

	descriptor := &Descriptor{
		Name:         column.Name,
		Label:        b.opts.Labeler(column.Name),
		BaseType:     baseType,
		DeclaredType: column.DeclaredType,
		Comment:      column.Comment,
		Nullable:     column.Nullable,
		Required:     !column.Nullable,
		Extra:        column.Extra,
		Kind:         kind,
		Choices:      choicesFor(baseType, suffix),
		Error:        column.Error,
	}
	if column.Default != nil {
		descriptor.Default = StringPtr(*column.Default)
	}
	return descriptor, nil
}

func (b *Builder) resolveKind(name, baseType string) (InputKind, error) {
	if kind, ok := b.opts.TypeMap.Lookup(baseType); ok {
		return kind, nil
	}
	if b.opts.DefaultKind != "" {
		b.opts.Logger.Printf("dbform: column %q has unmapped type %q, using %s", name, baseType, b.opts.DefaultKind)
		return b.opts.DefaultKind, nil
	}
	return "", fmt.Errorf("%w %q for column %q", ErrUnknownColumnType, baseType, name)
}

// splitDeclaredType separates "enum('a','b')" into the lower-cased base type
// "enum" and the raw suffix "('a','b')". Trailing modifiers such as
// "unsigned" follow the suffix and are dropped from the base type.
func splitDeclaredType(declared string) (string, string) {
	trimmed := strings.TrimSpace(declared)
	idx := strings.IndexByte(trimmed, '(')
	if idx < 0 {
		base, _, _ := strings.Cut(trimmed, " ")
		return strings.ToLower(base), ""
	}
	return strings.ToLower(strings.TrimSpace(trimmed[:idx])), trimmed[idx:]
}

func choicesFor(baseType, suffix string) []string {
	switch baseType {
	case "enum", "set":
		return parseChoiceList(suffix)
	case "datetime", "timestamp":
		return []string{CurrentTimestamp}
	default:
		return nil
	}
}

// parseChoiceList reads the candidates out of "('a','b')". Quote characters
// are removed and the remainder split on commas; order and duplicates are
// preserved.
func parseChoiceList(suffix string) []string {
	start := strings.IndexByte(suffix, '(')
	end := strings.LastIndexByte(suffix, ')')
	if start < 0 || end <= start {
		return nil
	}
	inner := suffix[start+1 : end]
	inner = strings.NewReplacer("'", "", `"`, "").Replace(inner)
	if inner == "" {
		return nil
	}
	return strings.Split(inner, ",")
}

func isAutoGenerated(extra string) bool {
	return strings.Contains(strings.ToLower(extra), AutoIncrement)
}
