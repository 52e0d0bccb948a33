package model

import (
	"github.com/goliatone/go-dbform/internal/model"
)

// Builder converts column metadata into form models.
type Builder interface {
	Build(columns []ColumnMetadata, values Values) (*FormModel, error)
	Describe(column ColumnMetadata) (*Descriptor, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	types       *TypeMap
	defaultKind InputKind
	labeler     func(string) string
	logger      Logger
}

// WithTypeMap replaces the base type table, typically DefaultTypeMap().With(...).
func WithTypeMap(types TypeMap) BuilderOption {
	return func(opts *builderOptions) {
		opts.types = &types
	}
}

// WithDefaultKind sets the kind used for base types missing from the table.
// Without it such columns fail with ErrUnknownColumnType.
func WithDefaultKind(kind InputKind) BuilderOption {
	return func(opts *builderOptions) {
		opts.defaultKind = kind
	}
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithLogger routes builder and merge diagnostics to logger.
func WithLogger(logger Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return model.New(model.Options{
		TypeMap:     cfg.types,
		DefaultKind: cfg.defaultKind,
		Labeler:     cfg.labeler,
		Logger:      cfg.logger,
	})
}
