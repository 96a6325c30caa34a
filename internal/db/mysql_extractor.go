package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tordrt/crudgen/internal/schema"
)

// MySQLExtractor reads table columns from MySQL
type MySQLExtractor struct {
	db     *sql.DB
	closer func() error
	schema string
}

// NewMySQLExtractor creates a new MySQL column extractor
func NewMySQLExtractor(client *MySQLClient, schemaName string) *MySQLExtractor {
	return &MySQLExtractor{
		db:     client.GetDB(),
		closer: client.Close,
		schema: schemaName,
	}
}

// newMySQLExtractorFromDB wraps an already opened handle
func newMySQLExtractorFromDB(db *sql.DB, schemaName string) *MySQLExtractor {
	return &MySQLExtractor{db: db, closer: db.Close, schema: schemaName}
}

// ExtractColumns returns the columns of one table in ordinal order
func (e *MySQLExtractor) ExtractColumns(ctx context.Context, table string) ([]schema.Column, error) {
	query := `
		SELECT
			COLUMN_NAME,
			DATA_TYPE,
			IS_NULLABLE,
			CHARACTER_MAXIMUM_LENGTH,
			NUMERIC_PRECISION,
			NUMERIC_SCALE
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := e.db.QueryContext(ctx, query, e.schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []schema.Column
	found := false
	for rows.Next() {
		var (
			name, dataType, nullable     string
			charLength, precision, scale sql.NullInt64
		)
		if err := rows.Scan(&name, &dataType, &nullable, &charLength, &precision, &scale); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		found = true
		if isManaged(name) {
			continue
		}
		columns = append(columns, newColumn(name, dataType, nullable == "YES",
			nullInt(charLength), nullInt(precision), nullInt(scale)))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, noColumnsError(table)
	}
	return columns, nil
}

// Close closes the underlying connection
func (e *MySQLExtractor) Close(_ context.Context) error {
	return e.closer()
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
