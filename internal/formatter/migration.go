package formatter

import (
	"path"

	"github.com/tordrt/crudgen/internal/schema"
)

// MigrationGenerator renders the create-table migration. Every run gets a
// new timestamped filename, so earlier migrations are never overwritten.
var MigrationGenerator = Generator{
	Kind:     schema.KindMigration,
	Template: "migration.tmpl",
	Filename: func(c *Context) string {
		return path.Join("database", "migrations", c.Timestamp+"_create_"+c.Table.Plural+"_table.php")
	},
}
