package schema

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-dbform/pkg/model"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_$]+(\.[A-Za-z0-9_$]+)?$`)

// MySQL reads column metadata with SHOW FULL COLUMNS. Any database/sql
// driver speaking the MySQL protocol works.
type MySQL struct {
	DB *sql.DB
}

// NewMySQL wraps an open connection pool.
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{DB: db}
}

// Columns returns the columns of table in declaration order. table may be
// qualified as "database.table".
func (m *MySQL) Columns(ctx context.Context, table string) ([]model.ColumnMetadata, error) {
	if m == nil || m.DB == nil {
		return nil, fmt.Errorf("schema: mysql connection is nil")
	}
	quoted, err := quoteMySQLIdentifier(table)
	if err != nil {
		return nil, err
	}

	rows, err := m.DB.QueryContext(ctx, "SHOW FULL COLUMNS FROM "+quoted)
	if err != nil {
		return nil, fmt.Errorf("schema: show columns %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("schema: show columns %s: %w", table, err)
	}

	var columns []model.ColumnMetadata
	for rows.Next() {
		cells := make([]sql.NullString, len(names))
		dest := make([]any, len(names))
		for idx := range cells {
			dest[idx] = &cells[idx]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("schema: scan column of %s: %w", table, err)
		}

		record := make(map[string]sql.NullString, len(names))
		for idx, name := range names {
			record[strings.ToLower(name)] = cells[idx]
		}
		columns = append(columns, mysqlColumn(record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schema: show columns %s: %w", table, err)
	}
	return columns, nil
}

// MySQLTable returns a Source bound to one table.
func MySQLTable(db *sql.DB, table string) Source {
	return mysqlSource{reader: NewMySQL(db), table: table}
}

type mysqlSource struct {
	reader *MySQL
	table  string
}

func (s mysqlSource) Kind() SourceKind {
	return SourceKindMySQL
}

func (s mysqlSource) Location() string {
	return s.table
}

func (s mysqlSource) Columns(ctx context.Context) ([]model.ColumnMetadata, error) {
	return s.reader.Columns(ctx, s.table)
}

// mysqlColumn maps one SHOW FULL COLUMNS row keyed by lower-cased header.
func mysqlColumn(record map[string]sql.NullString) model.ColumnMetadata {
	column := model.ColumnMetadata{
		Name:         record["field"].String,
		DeclaredType: record["type"].String,
		Nullable:     strings.EqualFold(record["null"].String, "YES"),
		Extra:        record["extra"].String,
		Comment:      record["comment"].String,
	}
	if def := record["default"]; def.Valid {
		column.Default = model.StringPtr(def.String)
	}
	return column
}

func quoteMySQLIdentifier(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if !identifierPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	parts := strings.Split(trimmed, ".")
	for idx, part := range parts {
		parts[idx] = "`" + part + "`"
	}
	return strings.Join(parts, "."), nil
}
