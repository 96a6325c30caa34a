package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tordrt/crudgen/internal/ddl"
	"github.com/tordrt/crudgen/internal/schema"
)

func intPtr(n int) *int { return &n }

func TestMap(t *testing.T) {
	supplier := schema.SupplierResource()

	tests := []struct {
		name      string
		col       schema.Column
		wantType  string
		wantRules string
	}{
		{
			name:      "ruc is required and unique even when nullable",
			col:       schema.Column{Name: "ruc", SQLType: "varchar", Length: intPtr(11)},
			wantType:  "string",
			wantRules: "required|max:11|unique:suppliers",
		},
		{
			name:      "razonsocial is required",
			col:       schema.Column{Name: "RazonSocial", SQLType: "VARCHAR", Length: intPtr(100)},
			wantType:  "string",
			wantRules: "required|max:100",
		},
		{
			name:      "nullable email",
			col:       schema.Column{Name: "email", SQLType: "varchar", Length: intPtr(50)},
			wantType:  "string",
			wantRules: "nullable|max:50|email",
		},
		{
			name:      "email rule regardless of type",
			col:       schema.Column{Name: "Email", SQLType: "text", NotNull: true},
			wantType:  "text",
			wantRules: "required|email",
		},
		{
			name:      "varchar without length has no max rule",
			col:       schema.Column{Name: "nombre", SQLType: "varchar"},
			wantType:  "string",
			wantRules: "nullable",
		},
		{
			name:      "char keeps its type but gets max",
			col:       schema.Column{Name: "estado", SQLType: "char", Length: intPtr(1), NotNull: true},
			wantType:  "char",
			wantRules: "required|max:1",
		},
		{
			name:      "integer",
			col:       schema.Column{Name: "stock", SQLType: "INTEGER", NotNull: true},
			wantType:  "INTEGER",
			wantRules: "required|integer",
		},
		{
			name:      "numeric with precision",
			col:       schema.Column{Name: "precio", SQLType: "numeric", Length: intPtr(8), Decimal: intPtr(2)},
			wantType:  "numeric",
			wantRules: "nullable|numeric|digits:8|decimal:2",
		},
		{
			name:      "decimal with length only",
			col:       schema.Column{Name: "peso", SQLType: "decimal", Length: intPtr(8)},
			wantType:  "decimal",
			wantRules: "nullable|numeric",
		},
		{
			name:      "limitecredito becomes decimal without precision rules",
			col:       schema.Column{Name: "LIMITECREDITO", SQLType: "Numeric", Length: intPtr(10), Decimal: intPtr(2)},
			wantType:  "decimal",
			wantRules: "nullable|numeric",
		},
		{
			name:      "limitecredito of another type passes through",
			col:       schema.Column{Name: "limitecredito", SQLType: "integer"},
			wantType:  "integer",
			wantRules: "nullable|integer",
		},
		{
			name:      "fecha gets date",
			col:       schema.Column{Name: "fecha", SQLType: "date", NotNull: true},
			wantType:  "date",
			wantRules: "required|date",
		},
		{
			name:      "other types get nothing extra",
			col:       schema.Column{Name: "activo", SQLType: "boolean"},
			wantType:  "boolean",
			wantRules: "nullable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Map(tt.col, supplier)
			assert.Equal(t, tt.wantType, got.FieldType)
			assert.Equal(t, tt.wantRules, got.String())
			assert.Equal(t, Required(tt.col), got.Required)
		})
	}
}

func TestMapUniqueScopeFollowsResource(t *testing.T) {
	resource := schema.DerivedResource("client", "clients")
	got := Map(schema.Column{Name: "ruc", SQLType: "char", Length: intPtr(11), NotNull: true}, resource)

	assert.Equal(t, "required|max:11|unique:clients", got.String())
}

func TestFirstTokenIsRequiredOrNullable(t *testing.T) {
	columns := ddl.Parse(`
		ruc varchar(11)
		razonsocial varchar(100)
		nombre varchar(100) NOT NULL
		telefono varchar(20)
		stock integer
		fecha date NOT NULL
		activo boolean not null
	`)

	for _, col := range columns {
		got := Map(col, schema.SupplierResource())
		want := "nullable"
		if col.NotNull || col.Name == "ruc" || col.Name == "razonsocial" {
			want = "required"
		}
		assert.Equal(t, want, got.Rules[0], col.Name)
	}
}
