package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/crudgen/internal/schema"
)

func TestMultiFileFormatterWrite(t *testing.T) {
	tmpDir := t.TempDir()
	artifacts, err := RenderAll(supplierContext(t, supplierDDL))
	require.NoError(t, err)

	f := NewMultiFileFormatter(tmpDir)
	written, err := f.Write(artifacts)
	require.NoError(t, err)
	require.Len(t, written, len(artifacts))

	for _, a := range artifacts {
		content, err := os.ReadFile(filepath.Join(tmpDir, filepath.FromSlash(a.Filename)))
		require.NoError(t, err, a.Filename)
		assert.Equal(t, a.Content, string(content))
	}
}

func TestMultiFileFormatterOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	f := NewMultiFileFormatter(tmpDir)
	a := schema.Artifact{Kind: schema.KindModel, Filename: "app/Models/Supplier.php", Content: "old"}

	_, err := f.Write([]schema.Artifact{a})
	require.NoError(t, err)

	a.Content = "new"
	_, err = f.Write([]schema.Artifact{a})
	require.NoError(t, err)

	content, err := os.ReadFile(f.Path(a))
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestMultiFileFormatterStopsAtFirstFailure(t *testing.T) {
	tmpDir := t.TempDir()
	// A regular file where a directory is expected makes MkdirAll fail.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "app"), []byte("x"), 0644))

	f := NewMultiFileFormatter(tmpDir)
	written, err := f.Write([]schema.Artifact{
		{Kind: schema.KindMigration, Filename: "database/migrations/m.php", Content: "m"},
		{Kind: schema.KindModel, Filename: "app/Models/Supplier.php", Content: "model"},
		{Kind: schema.KindViewIndex, Filename: "resources/views/suppliers/index.blade.php", Content: "v"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "app/Models/Supplier.php")
	assert.Equal(t, []string{filepath.Join(tmpDir, "database", "migrations", "m.php")}, written)

	// Nothing is rolled back.
	_, statErr := os.Stat(written[0])
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(tmpDir, "resources"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoutesFragment(t *testing.T) {
	existing := "<?php\n\nuse Illuminate\\Support\\Facades\\Route;\n"
	got, err := RoutesFragment(schema.SupplierResource(), existing)
	require.NoError(t, err)

	assert.Equal(t, RoutesFragmentFile, got.Filename)
	assert.True(t, strings.HasPrefix(got.Content,
		"<?php\nuse App\\Http\\Controllers\\SupplierController;\n\nuse Illuminate\\Support\\Facades\\Route;\n\nAuth::routes"))
	assert.Contains(t, got.Content,
		"    Route::delete('/proveedores/{proveedor}', [SupplierController::class, 'destroy'])->name('proveedores.destroy');\n")
	assert.Contains(t, got.Content,
		"    Route::put('/proveedores/{proveedor}', [SupplierController::class, 'update'])->name('proveedores.update');\n")
	assert.Equal(t, 6, strings.Count(got.Content, "[SupplierController::class"))
}

func TestRoutesFragmentWithoutOpenTag(t *testing.T) {
	got, err := RoutesFragment(schema.SupplierResource(), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.Content, "use App\\Http\\Controllers\\SupplierController;\n\nAuth::routes"))
}

func TestMenuFragment(t *testing.T) {
	got, err := MenuFragment(schema.DerivedResource("client", "clients"))
	require.NoError(t, err)

	assert.Equal(t, MenuFragmentFile, got.Filename)
	assert.Contains(t, got.Content, "(REGISTRAR CLIENT y LISTAR CLIENT)")
	assert.Contains(t, got.Content, "'text' => 'Registrar Client',")
	assert.Contains(t, got.Content, "'url'  => 'clients/create',")
	assert.Contains(t, got.Content, "'text' => 'Listar Clients',")
}
