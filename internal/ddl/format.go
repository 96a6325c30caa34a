package ddl

import (
	"fmt"
	"strings"

	"github.com/tordrt/crudgen/internal/schema"
)

// Format renders columns one per line, without a CREATE TABLE header, so
// Parse reads them back into the same sequence provided names and types are
// single words.
func Format(columns []schema.Column) string {
	var b strings.Builder
	for i, col := range columns {
		b.WriteString(FormatColumn(col))
		if i < len(columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatColumn renders a single column definition
func FormatColumn(col schema.Column) string {
	var b strings.Builder
	b.WriteString(col.Name)
	b.WriteByte(' ')
	b.WriteString(col.SQLType)
	if col.Length != nil {
		fmt.Fprintf(&b, "(%d", *col.Length)
		if col.Decimal != nil {
			fmt.Fprintf(&b, ",%d", *col.Decimal)
		}
		b.WriteByte(')')
	}
	if col.NotNull {
		b.WriteByte(' ')
		b.WriteString(notNull)
	}
	return b.String()
}
