package model

import (
	"fmt"
	"strings"
)

func validateColumns(columns []ColumnMetadata) error {
	seen := make(map[string]int, len(columns))
	for idx, column := range columns {
		if strings.TrimSpace(column.Name) == "" {
			return fmt.Errorf("%w: row %d: name is required", ErrMalformedMetadata, idx)
		}
		if strings.TrimSpace(column.DeclaredType) == "" {
			return fmt.Errorf("%w: row %d (%s): declared type is required", ErrMalformedMetadata, idx, column.Name)
		}
		if prev, exists := seen[column.Name]; exists {
			return fmt.Errorf("%w: row %d: column %q already declared at row %d", ErrMalformedMetadata, idx, column.Name, prev)
		}
		seen[column.Name] = idx
	}
	return nil
}
