// Package rules maps parsed columns to Laravel field types and validation rules.
package rules

import (
	"fmt"
	"strings"

	"github.com/tordrt/crudgen/internal/schema"
)

// Column names with fixed meaning, compared case-insensitively
const (
	nameRUC           = "ruc"
	nameRazonSocial   = "razonsocial"
	nameLimiteCredito = "limitecredito"
	nameEmail         = "email"
	nameFecha         = "fecha"
)

// Mapping is the derived storage type and rule set of one column
type Mapping struct {
	FieldType string
	Required  bool
	Rules     []string
}

// String returns the pipe-joined rule tokens
func (m Mapping) String() string {
	return Join(m.Rules)
}

// Map derives the field type and validation rules for a column.
// The ruc uniqueness rule is scoped to resource.UniqueTable.
func Map(col schema.Column, resource schema.Resource) Mapping {
	required := Required(col)
	return Mapping{
		FieldType: FieldType(col),
		Required:  required,
		Rules:     validationRules(col, required, resource),
	}
}

// FieldType returns the migration column method for a column
func FieldType(col schema.Column) string {
	sqlType := strings.ToLower(col.SQLType)
	switch {
	case strings.Contains(sqlType, "numeric") && strings.EqualFold(col.Name, nameLimiteCredito):
		return "decimal"
	case strings.Contains(sqlType, "varchar"):
		return "string"
	default:
		return col.SQLType
	}
}

// Required reports whether the column must be present on input
func Required(col schema.Column) bool {
	return col.NotNull || strings.EqualFold(col.Name, nameRUC) || strings.EqualFold(col.Name, nameRazonSocial)
}

func validationRules(col schema.Column, required bool, resource schema.Resource) []string {
	sqlType := strings.ToLower(col.SQLType)
	name := strings.ToLower(col.Name)

	rules := make([]string, 0, 4)
	if required {
		rules = append(rules, "required")
	} else {
		rules = append(rules, "nullable")
	}

	if (strings.Contains(sqlType, "varchar") || strings.Contains(sqlType, "char")) && col.HasLength() {
		rules = append(rules, fmt.Sprintf("max:%d", *col.Length))
	}

	if strings.Contains(sqlType, "integer") {
		rules = append(rules, "integer")
	}

	if strings.Contains(sqlType, "numeric") || strings.Contains(sqlType, "decimal") {
		rules = append(rules, "numeric")
		if col.HasLength() && col.HasDecimal() && name != nameLimiteCredito {
			rules = append(rules,
				fmt.Sprintf("digits:%d", *col.Length),
				fmt.Sprintf("decimal:%d", *col.Decimal))
		}
	}

	switch name {
	case nameRUC:
		rules = append(rules, "unique:"+resource.UniqueTable)
	case nameEmail:
		rules = append(rules, "email")
	case nameFecha:
		rules = append(rules, "date")
	}

	return rules
}

// Join pipes rule tokens into a Laravel validation string
func Join(rules []string) string {
	return strings.Join(rules, "|")
}
