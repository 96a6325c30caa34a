package formatter

import (
	"path"

	"github.com/tordrt/crudgen/internal/schema"
)

func viewFile(name string) func(c *Context) string {
	return func(c *Context) string {
		return path.Join("resources", "views", c.Table.Plural, name+".blade.php")
	}
}

// CreateViewGenerator renders the registration form
var CreateViewGenerator = Generator{
	Kind:     schema.KindViewCreate,
	Template: "create.tmpl",
	Filename: viewFile("create"),
}

// EditViewGenerator renders the edit form, pre-filled from the record
var EditViewGenerator = Generator{
	Kind:     schema.KindViewEdit,
	Template: "edit.tmpl",
	Filename: viewFile("edit"),
}

// IndexViewGenerator renders the paginated listing
var IndexViewGenerator = Generator{
	Kind:     schema.KindViewIndex,
	Template: "index.tmpl",
	Filename: viewFile("index"),
}
