package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/crudgen/internal/ddl"
	"github.com/tordrt/crudgen/internal/schema"
)

const supplierDDL = "ruc varchar(11) NOT NULL, razonsocial varchar(100) NOT NULL, email varchar(50)"

var fixedNow = time.Date(2024, 3, 7, 9, 5, 30, 0, time.UTC)

func supplierContext(t *testing.T, ddlText string) *Context {
	t.Helper()
	table := schema.NewTable("supplier", ddl.Parse(ddlText), schema.InflectSuffix, schema.SupplierResource())
	return NewContext(table, fixedNow)
}

func renderKind(t *testing.T, c *Context, kind schema.ArtifactKind) schema.Artifact {
	t.Helper()
	artifacts, err := RenderAll(c)
	require.NoError(t, err)
	for _, a := range artifacts {
		if a.Kind == kind {
			return a
		}
	}
	t.Fatalf("no %s artifact rendered", kind)
	return schema.Artifact{}
}

func TestRenderAllFilenames(t *testing.T) {
	artifacts, err := RenderAll(supplierContext(t, supplierDDL))
	require.NoError(t, err)

	var got []string
	for _, a := range artifacts {
		got = append(got, a.Kind.String()+" "+a.Filename)
	}
	assert.Equal(t, []string{
		"migration database/migrations/2024_03_07_090530_create_suppliers_table.php",
		"model app/Models/Supplier.php",
		"controller app/Http/Controllers/SupplierController.php",
		"view_create resources/views/suppliers/create.blade.php",
		"view_edit resources/views/suppliers/edit.blade.php",
		"view_index resources/views/suppliers/index.blade.php",
	}, got)
}

func TestMigration(t *testing.T) {
	got := renderKind(t, supplierContext(t, supplierDDL), schema.KindMigration)

	want := `<?php

use Illuminate\Database\Migrations\Migration;
use Illuminate\Database\Schema\Blueprint;
use Illuminate\Support\Facades\Schema;

class CreateSuppliersTable extends Migration
{
    public function up():void
    {
        Schema::create('suppliers', function (Blueprint $table) {
            $table->id();
            $table->string('ruc', 11);
            $table->string('razonsocial', 100);
            $table->string('email', 50)->nullable();
            $table->timestamps();
        });
    }

    public function down():void
    {
        Schema::dropIfExists('proveedores');
    }
}
?>
`
	assert.Equal(t, want, got.Content)
}

func TestMigrationFieldArguments(t *testing.T) {
	c := supplierContext(t, `
		limitecredito numeric(10,2)
		ruc char(11)
		fecha date NOT NULL
		stock integer
	`)
	got := renderKind(t, c, schema.KindMigration).Content

	assert.Contains(t, got, "            $table->decimal('limitecredito', 10, 2)->nullable();\n")
	assert.Contains(t, got, "            $table->char('ruc', 11);\n")
	assert.Contains(t, got, "            $table->date('fecha');\n")
	assert.Contains(t, got, "            $table->integer('stock')->nullable();\n")
}

func TestMigrationDerivedResource(t *testing.T) {
	table := schema.NewTable("client", ddl.Parse("nombre varchar(80) NOT NULL"), schema.InflectSuffix,
		schema.DerivedResource("client", "clients"))
	got := renderKind(t, NewContext(table, fixedNow), schema.KindMigration).Content

	assert.Contains(t, got, "class CreateClientsTable extends Migration")
	assert.Contains(t, got, "Schema::create('clients',")
	assert.Contains(t, got, "Schema::dropIfExists('clients');")
}

func TestModel(t *testing.T) {
	got := renderKind(t, supplierContext(t, supplierDDL), schema.KindModel)

	want := `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Factories\HasFactory;
use Illuminate\Database\Eloquent\Model;

class Supplier extends Model
{
    use HasFactory;

    protected $fillable = [
        'ruc',
        'razonsocial',
        'email'
    ];
}
`
	assert.Equal(t, want, got.Content)
}

func TestModelKeepsDuplicates(t *testing.T) {
	got := renderKind(t, supplierContext(t, "ruc varchar(11)\nruc varchar(11)"), schema.KindModel).Content

	assert.Contains(t, got, "        'ruc',\n        'ruc'\n    ];")
}

func TestControllerValidation(t *testing.T) {
	got := renderKind(t, supplierContext(t, supplierDDL), schema.KindController).Content

	assert.Contains(t, got, `        $validatedData = $request->validate([
            'ruc' => 'required|max:11|unique:suppliers',
            'razonsocial' => 'required|max:100',
            'email' => 'nullable|max:50|email',
        ]);`)
	assert.Contains(t, got, "class SupplierController extends Controller")
	assert.Contains(t, got, "$proveedores = Supplier::paginate(5);")
	assert.Contains(t, got, "public function update(Request $request, Supplier $proveedor)")
	assert.Contains(t, got, "$proveedor->update($request->all());")
	assert.Contains(t, got, "$proveedor->delete();")

	// Only store validates.
	assert.Equal(t, 1, strings.Count(got, "->validate("))
}

func TestViews(t *testing.T) {
	c := supplierContext(t, supplierDDL+", razon_social varchar(10)")

	create := renderKind(t, c, schema.KindViewCreate).Content
	assert.Equal(t, 4, strings.Count(create, " required>"), "every input is required")
	assert.Contains(t, create, `<label for="razon_social">Razon social:</label>`)
	assert.Contains(t, create, `placeholder="Ingrese Email" required>`)
	assert.Contains(t, create, `<form action="{{ route('proveedores.store') }}" method="POST" autocomplete="off">`)
	assert.Equal(t, 1, strings.Count(create, "@section('content')"))

	edit := renderKind(t, c, schema.KindViewEdit).Content
	assert.Contains(t, edit, `value="{{ $proveedor->ruc }}" required>`)
	assert.Contains(t, edit, `{{ route('proveedores.update', ['proveedor' => $proveedor->id]) }}`)
	assert.Contains(t, edit, "@method('PUT')")

	index := renderKind(t, c, schema.KindViewIndex).Content
	assert.Contains(t, index, "                <th>Ruc</th>\n"+
		"                <th>Razonsocial</th>\n"+
		"                <th>Email</th>\n"+
		"                <th>Razon social</th>\n"+
		"                <th>Acciones</th>\n")
	assert.Contains(t, index, "                    <td>{{ $proveedor->razonsocial }}</td>\n")
	assert.Contains(t, index, "@foreach ($proveedores as $proveedor)")
	assert.Contains(t, index, "{{ $proveedores->links() }}")
	assert.Contains(t, index, "Lista de Proveedores")
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := RenderAll(supplierContext(t, supplierDDL))
	require.NoError(t, err)

	table := schema.NewTable("supplier", ddl.Parse(supplierDDL), schema.InflectSuffix, schema.SupplierResource())
	second, err := RenderAll(NewContext(table, fixedNow.Add(time.Hour)))
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		if first[i].Kind == schema.KindMigration {
			assert.NotEqual(t, first[i].Filename, second[i].Filename)
			assert.Equal(t, first[i].Content, second[i].Content)
			continue
		}
		assert.Equal(t, first[i], second[i])
	}
}

func TestEmptyColumns(t *testing.T) {
	artifacts, err := RenderAll(supplierContext(t, ""))
	require.NoError(t, err)
	assert.Len(t, artifacts, 6)
}
