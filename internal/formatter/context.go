package formatter

import (
	"strconv"
	"time"

	"github.com/tordrt/crudgen/internal/rules"
	"github.com/tordrt/crudgen/internal/schema"
)

// TimestampLayout is the migration filename prefix layout (YYYY_MM_DD_HHMMSS)
const TimestampLayout = "2006_01_02_150405"

// Field is the per-column data every template reads
type Field struct {
	Name      string
	Label     string
	FieldType string
	Required  bool
	Rules     string
	Length    string
	Decimal   string
}

// Context is the shared input of all generators for one request.
// Fields follow the parsed column order.
type Context struct {
	Table     schema.Table
	Resource  schema.Resource
	Fields    []Field
	Timestamp string
}

// NewContext maps every column once so all artifacts agree on names,
// order and nullability.
func NewContext(table schema.Table, now time.Time) *Context {
	fields := make([]Field, 0, len(table.Columns))
	for _, col := range table.Columns {
		m := rules.Map(col, table.Resource)
		f := Field{
			Name:      col.Name,
			Label:     schema.Label(col.Name),
			FieldType: m.FieldType,
			Required:  m.Required,
			Rules:     m.String(),
		}
		if col.Length != nil {
			f.Length = strconv.Itoa(*col.Length)
		}
		if col.Decimal != nil {
			f.Decimal = strconv.Itoa(*col.Decimal)
		}
		fields = append(fields, f)
	}

	return &Context{
		Table:     table,
		Resource:  table.Resource,
		Fields:    fields,
		Timestamp: now.Format(TimestampLayout),
	}
}

// MigrationClass returns the plural part of the migration class name
func (c *Context) MigrationClass() string {
	return schema.Capitalize(c.Table.Plural)
}
