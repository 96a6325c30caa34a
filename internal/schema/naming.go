package schema

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// Inflection selects how plural names are derived
type Inflection int

const (
	// InflectSuffix appends "s" to the singular name
	InflectSuffix Inflection = iota
	// InflectEnglish applies English pluralization rules
	InflectEnglish
)

// ParseInflection maps a config value ("suffix", "english") to an Inflection
func ParseInflection(s string) (Inflection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "suffix":
		return InflectSuffix, nil
	case "english":
		return InflectEnglish, nil
	default:
		return InflectSuffix, fmt.Errorf("invalid pluralize mode: %s (must be 'suffix' or 'english')", s)
	}
}

func (i Inflection) String() string {
	if i == InflectEnglish {
		return "english"
	}
	return "suffix"
}

// Pluralize derives the plural form of a singular table name
func Pluralize(name string, i Inflection) string {
	if i == InflectEnglish {
		return inflect.Pluralize(name)
	}
	return name + "s"
}

// Capitalize upper-cases the first letter and lower-cases the rest
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Label turns a column name into form label text
func Label(column string) string {
	return Capitalize(strings.ReplaceAll(column, "_", " "))
}
