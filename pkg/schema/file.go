package schema

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dbform/pkg/model"
)

// fileSource reads column metadata from a YAML or JSON document on disk.
type fileSource struct {
	path string
}

// SourceFromFile returns a Source reading the column list stored at path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Columns(ctx context.Context) ([]model.ColumnMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.path)
}

// LoadFile reads a column list. JSON is accepted as a YAML subset.
func LoadFile(path string) ([]model.ColumnMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	columns, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return columns, nil
}

// Decode parses a column list. The document is either a bare sequence of
// columns or a mapping with a "columns" key.
func Decode(r io.Reader) ([]model.ColumnMetadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("decode columns: %w: empty document", model.ErrMalformedMetadata)
	}

	var columns []model.ColumnMetadata
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&columns)
	case yaml.MappingNode:
		var wrapper struct {
			Columns []model.ColumnMetadata `yaml:"columns"`
		}
		err = root.Decode(&wrapper)
		columns = wrapper.Columns
	default:
		return nil, fmt.Errorf("decode columns: %w: expected a list of columns", model.ErrMalformedMetadata)
	}
	if err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	return columns, nil
}

// ValuesFromFile reads a value source: a mapping from column name to a
// scalar or a list.
func ValuesFromFile(path string) (model.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: decode values %s: %w", path, err)
	}
	values, err := model.ValuesFromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: values %s: %w", path, err)
	}
	return values, nil
}
