package model

import "errors"

var (
	// ErrUnknownColumnType is returned when a base type has no TypeMap entry
	// and no default kind was configured.
	ErrUnknownColumnType = errors.New("dbform: unknown column type")
	// ErrMalformedMetadata is returned when a metadata row lacks a name or a
	// declared type, or repeats a column name.
	ErrMalformedMetadata = errors.New("dbform: malformed metadata")
	// ErrUnknownColumn is returned when a caller references a column that is
	// not part of the form model.
	ErrUnknownColumn = errors.New("dbform: unknown column")
	// ErrDuplicateColumn is returned when adding a column whose name is
	// already present.
	ErrDuplicateColumn = errors.New("dbform: duplicate column")
	// ErrUnknownInputKind is returned when an override names an unsupported
	// input kind.
	ErrUnknownInputKind = errors.New("dbform: unknown input kind")
)
