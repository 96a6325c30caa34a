package db

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/tordrt/crudgen/internal/schema"
)

// typeAliases maps vendor type names to the Laravel column method the
// generated migration should call
var typeAliases = map[string]string{
	"character varying":           "varchar",
	"character":                   "char",
	"bpchar":                      "char",
	"int":                         "integer",
	"int4":                        "integer",
	"mediumint":                   "integer",
	"bigint":                      "bigInteger",
	"int8":                        "bigInteger",
	"unsigned big int":            "bigInteger",
	"smallint":                    "smallInteger",
	"int2":                        "smallInteger",
	"tinyint":                     "tinyInteger",
	"bool":                        "boolean",
	"double precision":            "double",
	"float8":                      "double",
	"real":                        "float",
	"float4":                      "float",
	"timestamp without time zone": "timestamp",
	"timestamp with time zone":    "timestampTz",
	"time without time zone":      "time",
	"time with time zone":         "timeTz",
	"datetime":                    "dateTime",
	"longtext":                    "longText",
	"mediumtext":                  "mediumText",
}

// normalizeType reduces a vendor type name to the single word the DDL
// grammar accepts
func normalizeType(dataType string) string {
	t := strings.ToLower(strings.Join(strings.Fields(dataType), " "))
	if alias, ok := typeAliases[t]; ok {
		return alias
	}
	if fields := strings.Fields(t); len(fields) > 0 {
		t = fields[0]
	}
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return '_'
	}, t)
}

func isCharType(t string) bool {
	return strings.Contains(strings.ToLower(t), "char")
}

func isNumericType(t string) bool {
	t = strings.ToLower(t)
	return t == "numeric" || t == "decimal"
}

// newColumn builds a column, attaching length only to character types and
// precision/scale only to numeric ones
func newColumn(name, dataType string, nullable bool, charLength, precision, scale *int) schema.Column {
	col := schema.Column{
		Name:    name,
		SQLType: normalizeType(dataType),
		NotNull: !nullable,
	}
	switch {
	case isCharType(col.SQLType):
		col.Length = charLength
	case isNumericType(col.SQLType) && precision != nil:
		col.Length = precision
		col.Decimal = scale
	}
	return col
}

// splitDeclaredType splits a declared type such as "NUMERIC(10, 2)" into
// its name and arguments
func splitDeclaredType(declared string) (name string, length, decimal *int) {
	open := strings.Index(declared, "(")
	if open < 0 {
		return strings.TrimSpace(declared), nil, nil
	}
	name = strings.TrimSpace(declared[:open])
	end := strings.LastIndex(declared, ")")
	if end < open {
		return name, nil, nil
	}
	args := strings.Split(declared[open+1:end], ",")
	if n, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil {
		length = &n
	}
	if len(args) > 1 && length != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(args[1])); err == nil {
			decimal = &n
		}
	}
	return name, length, decimal
}
