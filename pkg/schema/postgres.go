package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/goliatone/go-dbform/pkg/model"
)

const postgresColumnsQuery = `
	SELECT
		c.column_name,
		c.data_type,
		c.udt_name,
		c.is_nullable,
		c.column_default,
		c.is_identity,
		COALESCE(c.character_maximum_length, 0),
		COALESCE(c.numeric_precision, 0),
		COALESCE(c.numeric_scale, 0),
		COALESCE(pgd.description, ''),
		COALESCE((
			SELECT array_agg(e.enumlabel ORDER BY e.enumsortorder)
			FROM pg_type t
			JOIN pg_enum e ON e.enumtypid = t.oid
			WHERE t.typname = c.udt_name
		), '{}')
	FROM information_schema.columns c
	LEFT JOIN pg_catalog.pg_statio_all_tables st
		ON st.schemaname = c.table_schema AND st.relname = c.table_name
	LEFT JOIN pg_catalog.pg_description pgd
		ON pgd.objoid = st.relid AND pgd.objsubid = c.ordinal_position
	WHERE c.table_schema = $1 AND c.table_name = $2
	ORDER BY c.ordinal_position
`

// OpenPostgres opens a connection pool with the lib/pq driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("schema: open postgres: %w", err)
	}
	return db, nil
}

// Postgres reads column metadata from information_schema and expresses it
// in the MySQL type vocabulary the type map understands.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// Columns returns the columns of schemaName.table in ordinal order. An empty
// schemaName means "public".
func (p *Postgres) Columns(ctx context.Context, schemaName, table string) ([]model.ColumnMetadata, error) {
	if p == nil || p.DB == nil {
		return nil, fmt.Errorf("schema: postgres connection is nil")
	}
	if strings.TrimSpace(schemaName) == "" {
		schemaName = "public"
	}

	rows, err := p.DB.QueryContext(ctx, postgresColumnsQuery, schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("schema: describe %s.%s: %w", schemaName, table, err)
	}
	defer rows.Close()

	var columns []model.ColumnMetadata
	for rows.Next() {
		var row postgresRow
		if err := rows.Scan(
			&row.Name,
			&row.DataType,
			&row.UDTName,
			&row.IsNullable,
			&row.Default,
			&row.IsIdentity,
			&row.MaxLength,
			&row.Precision,
			&row.Scale,
			&row.Comment,
			pq.Array(&row.EnumLabels),
		); err != nil {
			return nil, fmt.Errorf("schema: scan column of %s.%s: %w", schemaName, table, err)
		}
		columns = append(columns, postgresColumn(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schema: describe %s.%s: %w", schemaName, table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema: table %s.%s has no columns or does not exist", schemaName, table)
	}
	return columns, nil
}

// PostgresTable returns a Source bound to one table.
func PostgresTable(db *sql.DB, schemaName, table string) Source {
	return postgresSource{reader: NewPostgres(db), schema: schemaName, table: table}
}

type postgresSource struct {
	reader *Postgres
	schema string
	table  string
}

func (s postgresSource) Kind() SourceKind {
	return SourceKindPostgres
}

func (s postgresSource) Location() string {
	if s.schema == "" {
		return s.table
	}
	return s.schema + "." + s.table
}

func (s postgresSource) Columns(ctx context.Context) ([]model.ColumnMetadata, error) {
	return s.reader.Columns(ctx, s.schema, s.table)
}

type postgresRow struct {
	Name       string
	DataType   string
	UDTName    string
	IsNullable string
	Default    sql.NullString
	IsIdentity string
	MaxLength  int64
	Precision  int64
	Scale      int64
	Comment    string
	EnumLabels []string
}

func postgresColumn(row postgresRow) model.ColumnMetadata {
	column := model.ColumnMetadata{
		Name:         row.Name,
		DeclaredType: postgresDeclaredType(row),
		Nullable:     strings.EqualFold(row.IsNullable, "YES"),
		Comment:      row.Comment,
	}

	def := strings.TrimSpace(row.Default.String)
	switch {
	case strings.EqualFold(row.IsIdentity, "YES"), strings.HasPrefix(def, "nextval("):
		column.Extra = model.AutoIncrement
	case row.Default.Valid:
		if value, ok := postgresDefault(def); ok {
			column.Default = model.StringPtr(value)
		}
	}
	return column
}

// postgresDeclaredType maps a Postgres type onto the base type names used
// by the default type map, keeping sizes where they matter.
func postgresDeclaredType(row postgresRow) string {
	dataType := strings.ToLower(row.DataType)
	switch dataType {
	case "user-defined":
		if len(row.EnumLabels) > 0 {
			return "enum(" + quoteChoices(row.EnumLabels) + ")"
		}
		return "text"
	case "character varying":
		if row.MaxLength > 0 {
			return "varchar(" + strconv.FormatInt(row.MaxLength, 10) + ")"
		}
		return "text"
	case "character":
		return "char(" + strconv.FormatInt(max(row.MaxLength, 1), 10) + ")"
	case "integer":
		return "int"
	case "smallint", "bigint", "real", "date", "text", "boolean":
		return dataType
	case "double precision":
		return "double"
	case "numeric":
		if row.Precision > 0 {
			return fmt.Sprintf("decimal(%d,%d)", row.Precision, row.Scale)
		}
		return "decimal"
	case "timestamp without time zone", "timestamp with time zone":
		return "timestamp"
	case "time without time zone", "time with time zone":
		return "time"
	case "uuid":
		return "char(36)"
	case "bytea":
		return "blob"
	case "json", "jsonb", "xml", "array":
		return "text"
	default:
		return strings.ToLower(row.UDTName)
	}
}

// postgresDefault strips the type cast Postgres attaches to literal
// defaults ('active'::status). Expression defaults such as now() are kept
// verbatim; NULL defaults report false.
func postgresDefault(def string) (string, bool) {
	if def == "" {
		return "", false
	}
	if strings.HasPrefix(strings.ToUpper(def), "NULL") {
		return "", false
	}
	if strings.HasPrefix(def, "'") {
		end := strings.LastIndex(def, "'")
		if end > 0 {
			return strings.ReplaceAll(def[1:end], "''", "'"), true
		}
	}
	if idx := strings.Index(def, "::"); idx > 0 {
		def = def[:idx]
	}
	return def, true
}

func quoteChoices(labels []string) string {
	quoted := make([]string, len(labels))
	for idx, label := range labels {
		quoted[idx] = "'" + label + "'"
	}
	return strings.Join(quoted, ",")
}
