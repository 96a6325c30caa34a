package schema

// Resource holds the names the generated routes, views and migration refer to
type Resource struct {
	Route       string `yaml:"route"`        // route and view prefix
	Variable    string `yaml:"variable"`     // single record template variable
	Collection  string `yaml:"collection"`   // paginated list template variable
	Title       string `yaml:"title"`        // singular display title
	TitlePlural string `yaml:"title_plural"` // plural display title
	Controller  string `yaml:"controller"`   // controller referenced by the routes fragment
	UniqueTable string `yaml:"unique_table"` // table the ruc uniqueness rule checks
	CreateTable string `yaml:"create_table"` // table created by the migration
	DropTable   string `yaml:"drop_table"`   // table dropped by the migration rollback
	PerPage     int    `yaml:"per_page"`
}

// SupplierResource returns the fixed supplier profile the generated code
// has always targeted. Its migration create and drop tables do not follow
// the supplied table name.
func SupplierResource() Resource {
	return Resource{
		Route:       "proveedores",
		Variable:    "proveedor",
		Collection:  "proveedores",
		Title:       "Proveedor",
		TitlePlural: "Proveedores",
		Controller:  "SupplierController",
		UniqueTable: "suppliers",
		CreateTable: "suppliers",
		DropTable:   "proveedores",
		PerPage:     5,
	}
}

// DerivedResource returns a profile where every name follows the table
func DerivedResource(name, plural string) Resource {
	return Resource{
		Route:       plural,
		Variable:    name,
		Collection:  plural,
		Title:       Capitalize(name),
		TitlePlural: Capitalize(plural),
		Controller:  Capitalize(name) + "Controller",
		UniqueTable: plural,
		CreateTable: plural,
		DropTable:   plural,
		PerPage:     5,
	}
}

// Override returns r with every non-zero field of o applied on top
func (r Resource) Override(o Resource) Resource {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&r.Route, o.Route)
	set(&r.Variable, o.Variable)
	set(&r.Collection, o.Collection)
	set(&r.Title, o.Title)
	set(&r.TitlePlural, o.TitlePlural)
	set(&r.Controller, o.Controller)
	set(&r.UniqueTable, o.UniqueTable)
	set(&r.CreateTable, o.CreateTable)
	set(&r.DropTable, o.DropTable)
	if o.PerPage > 0 {
		r.PerPage = o.PerPage
	}
	return r
}
