package db

import (
	"context"
	"fmt"

	"github.com/tordrt/crudgen/internal/schema"
)

// SQLiteExtractor reads table columns from SQLite
type SQLiteExtractor struct {
	client *SQLiteClient
}

// NewSQLiteExtractor creates a new SQLite column extractor
func NewSQLiteExtractor(client *SQLiteClient) *SQLiteExtractor {
	return &SQLiteExtractor{
		client: client,
	}
}

// ExtractColumns returns the columns of one table in declaration order.
// SQLite only keeps the declared type, so lengths come from parsing it.
func (e *SQLiteExtractor) ExtractColumns(ctx context.Context, table string) ([]schema.Column, error) {
	query := `SELECT name, type, "notnull" FROM pragma_table_info(?) ORDER BY cid`

	rows, err := e.client.GetDB().QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []schema.Column
	found := false
	for rows.Next() {
		var (
			name, declared string
			notNull        int
		)
		if err := rows.Scan(&name, &declared, &notNull); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		found = true
		if isManaged(name) {
			continue
		}
		typeName, length, decimal := splitDeclaredType(declared)
		if typeName == "" {
			typeName = "text"
		}
		columns = append(columns, newColumn(name, typeName, notNull == 0, length, length, decimal))
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
func (e *SQLiteExtractor) Close(_ context.Context) error {
	return e.client.Close()
}
