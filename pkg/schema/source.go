package schema

import (
	"context"
	"errors"

	"github.com/goliatone/go-dbform/pkg/model"
)

// ErrInvalidIdentifier is returned for table or schema names that cannot be
// safely interpolated into a metadata query.
var ErrInvalidIdentifier = errors.New("schema: invalid identifier")

// Source yields the ordered column metadata of one table. Implementations
// read files or query a live database; the result feeds model.Builder.
type Source interface {
	Kind() SourceKind
	Location() string
	Columns(ctx context.Context) ([]model.ColumnMetadata, error)
}

// SourceKind enumerates the metadata origins.
type SourceKind string

const (
	SourceKindFile     SourceKind = "file"
	SourceKindMySQL    SourceKind = "mysql"
	SourceKindPostgres SourceKind = "postgres"
)
