//go:build integration

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestPostgresExtractColumns(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("app"),
		postgres.WithUsername("app"),
		postgres.WithPassword("secret"),
		postgres.BasicWaitStrategies(),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	client, err := NewPostgresClient(ctx, connString)
	require.NoError(t, err)
	_, err = client.GetConnection().Exec(ctx, `
		CREATE TABLE suppliers (
			id BIGSERIAL PRIMARY KEY,
			ruc VARCHAR(11) NOT NULL,
			email CHARACTER VARYING(50),
			limitecredito NUMERIC(10, 2),
			activo BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP
		)
	`)
	require.NoError(t, err)
	require.NoError(t, client.Close(ctx))

	source, err := Connect(ctx, connString, "")
	require.NoError(t, err)
	defer func() { _ = source.Close(ctx) }()

	columns, err := source.ExtractColumns(ctx, "suppliers")
	require.NoError(t, err)
	require.Len(t, columns, 4)

	assert.Equal(t, "ruc", columns[0].Name)
	assert.Equal(t, "varchar", columns[0].SQLType)
	assert.Equal(t, 11, *columns[0].Length)
	assert.True(t, columns[0].NotNull)

	assert.False(t, columns[1].NotNull)
	assert.Equal(t, 50, *columns[1].Length)

	assert.Equal(t, "numeric", columns[2].SQLType)
	assert.Equal(t, 10, *columns[2].Length)
	assert.Equal(t, 2, *columns[2].Decimal)

	assert.Equal(t, "boolean", columns[3].SQLType)
	assert.True(t, columns[3].NotNull)

	_, err = source.ExtractColumns(ctx, "missing")
	assert.Error(t, err)
}
