package formatter

import (
	"path"

	"github.com/tordrt/crudgen/internal/schema"
)

// ControllerGenerator renders the resource controller. Only store
// validates; update passes the whole request payload to the model.
var ControllerGenerator = Generator{
	Kind:     schema.KindController,
	Template: "controller.tmpl",
	Filename: func(c *Context) string {
		return path.Join("app", "Http", "Controllers", c.Table.ControllerName()+".php")
	},
}
