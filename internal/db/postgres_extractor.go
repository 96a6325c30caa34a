package db

import (
	"context"
	"fmt"

	"github.com/tordrt/crudgen/internal/schema"
)

// PostgresExtractor reads table columns from PostgreSQL
type PostgresExtractor struct {
	client *PostgresClient
	schema string
}

// NewPostgresExtractor creates a new PostgreSQL column extractor
func NewPostgresExtractor(client *PostgresClient, schemaName string) *PostgresExtractor {
	return &PostgresExtractor{
		client: client,
		schema: schemaName,
	}
}

// ExtractColumns returns the columns of one table in ordinal order
func (e *PostgresExtractor) ExtractColumns(ctx context.Context, table string) ([]schema.Column, error) {
	query := `
		SELECT
			column_name::text,
			data_type::text,
			is_nullable::text,
			character_maximum_length::int,
			numeric_precision::int,
			numeric_scale::int
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := e.client.GetConnection().Query(ctx, query, e.schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []schema.Column
	found := false
	for rows.Next() {
		var (
			name, dataType, nullable     string
			charLength, precision, scale *int
		)
		if err := rows.Scan(&name, &dataType, &nullable, &charLength, &precision, &scale); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		found = true
		if isManaged(name) {
			continue
		}
		columns = append(columns, newColumn(name, dataType, nullable == "YES", charLength, precision, scale))
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
func (e *PostgresExtractor) Close(ctx context.Context) error {
	return e.client.Close(ctx)
}
