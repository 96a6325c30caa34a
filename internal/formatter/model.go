package formatter

import (
	"path"

	"github.com/tordrt/crudgen/internal/schema"
)

// ModelGenerator renders the Eloquent model with every column fillable
var ModelGenerator = Generator{
	Kind:     schema.KindModel,
	Template: "model.tmpl",
	Filename: func(c *Context) string {
		return path.Join("app", "Models", c.Table.ClassName()+".php")
	},
}
