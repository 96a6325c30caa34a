// Package db reads column definitions from live PostgreSQL, MySQL and
// SQLite tables so an existing table can stand in for pasted DDL.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/tordrt/crudgen/internal/schema"
)

// Source extracts the columns of one table, in ordinal order
type Source interface {
	ExtractColumns(ctx context.Context, table string) ([]schema.Column, error)
	Close(ctx context.Context) error
}

// Connect opens a Source for a postgres://, mysql:// or sqlite:// URL.
// schemaName may be empty: PostgreSQL then uses "public" and MySQL the
// database named in the URL.
func Connect(ctx context.Context, databaseURL, schemaName string) (Source, error) {
	dbType, connStr, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	switch dbType {
	case "postgres":
		client, err := NewPostgresClient(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if schemaName == "" {
			schemaName = "public"
		}
		return NewPostgresExtractor(client, schemaName), nil
	case "mysql":
		if schemaName == "" {
			if schemaName, err = ParseDatabaseName(connStr); err != nil {
				return nil, fmt.Errorf("failed to determine database name: %w (please specify a schema)", err)
			}
		}
		client, err := NewMySQLClient(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		return NewMySQLExtractor(client, schemaName), nil
	default:
		client, err := NewSQLiteClient(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
		}
		return NewSQLiteExtractor(client), nil
	}
}

// parseDatabaseURL detects database type and returns connection string
func parseDatabaseURL(url string) (dbType, connectionStr string, err error) {
	if url == "" {
		return "", "", fmt.Errorf("database URL is required")
	}

	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "postgres", url, nil
	}

	if strings.HasPrefix(url, "mysql://") {
		// The Go MySQL driver takes a bare DSN
		return "mysql", strings.TrimPrefix(url, "mysql://"), nil
	}

	if strings.HasPrefix(url, "sqlite://") {
		return "sqlite", strings.TrimPrefix(url, "sqlite://"), nil
	}

	return "", "", fmt.Errorf("invalid database URL scheme (must start with postgres://, mysql://, or sqlite://)")
}

// managedColumns are declared by every generated migration already
var managedColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

func isManaged(name string) bool {
	return managedColumns[strings.ToLower(name)]
}

func noColumnsError(table string) error {
	return fmt.Errorf("table %s not found or has no columns", table)
}
