package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	pkgmodel "github.com/goliatone/go-dbform/pkg/model"
)

// UsersColumns returns the column metadata of a small users table touching
// every default input kind.
func UsersColumns() []pkgmodel.ColumnMetadata {
	return []pkgmodel.ColumnMetadata{
		{Name: "id", DeclaredType: "int(11) unsigned", Extra: pkgmodel.AutoIncrement},
		{Name: "user_name", DeclaredType: "varchar(32)", Comment: "Shown to other members"},
		{Name: "password", DeclaredType: "varchar(64)"},
		{Name: "bio", DeclaredType: "text", Nullable: true},
		{Name: "status", DeclaredType: "enum('active','inactive')", Default: pkgmodel.StringPtr("active")},
		{Name: "tags", DeclaredType: "set('a','b','c')", Nullable: true},
		{Name: "newsletter", DeclaredType: "boolean", Default: pkgmodel.StringPtr("0")},
		{Name: "created_at", DeclaredType: "datetime"},
	}
}

// BuildForm synthesises a FormModel and fails the test on error. A nil
// values argument builds a blank model.
func BuildForm(t *testing.T, columns []pkgmodel.ColumnMetadata, values pkgmodel.Values, options ...pkgmodel.BuilderOption) *pkgmodel.FormModel {
	t.Helper()

	form, err := pkgmodel.NewBuilder(options...).Build(columns, values)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	return form
}

// LoadColumns reads a YAML or JSON column fixture.
func LoadColumns(t *testing.T, path string) []pkgmodel.ColumnMetadata {
	t.Helper()

	columns, err := LoadColumnsFromPath(path)
	if err != nil {
		t.Fatalf("load columns: %v", err)
	}
	return columns
}

// LoadColumnsFromPath mirrors LoadColumns for callers without a *testing.T.
func LoadColumnsFromPath(path string) ([]pkgmodel.ColumnMetadata, error) {
	if path == "" {
		return nil, errors.New("testsupport: columns path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read columns: %w", err)
	}
	var out []pkgmodel.ColumnMetadata
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: decode columns: %w", err)
	}
	return out, nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs a render function that writes to an io.Writer and
// returns both the string result and what the writer received.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
