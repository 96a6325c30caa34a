// Package ddl reads column definitions out of CREATE TABLE text.
//
// The grammar is intentionally small. A column is
//
//	word ws+ word [ "(" digits [","] [digits] ")" ] [ ws+ "NOT NULL" ]
//
// where a word is a run of letters, numbers and underscores. Columns are
// matched independently, leftmost first and without overlap, anywhere in the
// text; anything that does not fit the shape is skipped. A CREATE TABLE
// header is matched like any other text, so "CREATE TABLE" yields a column
// unless StripHeader is set.
//
// Whitespace is Unicode whitespace (unicode.IsSpace), as in Python's \s.
// Grammar holds the regular expression the Scanner follows; it differs only
// in that RE2's \s is ASCII-only, so separators such as \v or U+00A0 split
// columns for the Scanner but not for Grammar.
//
// NOT NULL is only recognized in upper case with a single space. Lower case
// or differently spaced spellings leave the column nullable.
package ddl

import (
	"regexp"
	"strconv"
	"unicode"

	"github.com/tordrt/crudgen/internal/schema"
)

// Grammar is the column pattern, with ASCII-only whitespace
const Grammar = `([\p{L}\p{N}_]+)\s+([\p{L}\p{N}_]+)(\((\d+),?(\d+)?\))?(\s+NOT NULL)?`

const notNull = "NOT NULL"

// Parser turns DDL text into an ordered column sequence
type Parser interface {
	Parse(text string) []schema.Column
}

// Scanner is a Parser that tokenizes the text rune by rune
type Scanner struct {
	// StripHeader skips a leading CREATE TABLE header before matching
	StripHeader bool
}

// NewScanner creates a scanner that matches the whole text
func NewScanner() *Scanner {
	return &Scanner{}
}

// Parse is shorthand for NewScanner().Parse(text)
func Parse(text string) []schema.Column {
	return NewScanner().Parse(text)
}

var headerPattern = regexp.MustCompile(
	`^(?is)\s*CREATE\s+(?:(?:TEMP|TEMPORARY)\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?[^\s(]+\s*\(`)

// StripHeader removes a leading "CREATE TABLE name (" so the statement
// keywords are not read as a column.
func StripHeader(text string) string {
	if loc := headerPattern.FindStringIndex(text); loc != nil {
		return text[loc[1]:]
	}
	return text
}

// Parse returns every column in textual order. Duplicates are kept.
func (s *Scanner) Parse(text string) []schema.Column {
	if s.StripHeader {
		text = StripHeader(text)
	}
	src := []rune(text)

	var columns []schema.Column
	for pos := 0; pos < len(src); {
		col, end, ok := matchColumn(src, pos)
		if ok {
			columns = append(columns, col)
			pos = end
			continue
		}
		// A word that fails to start a column fails from every offset
		// inside it too, so resume after the whole word.
		pos = max(scanWhile(src, pos, isWord), pos+1)
	}
	return columns
}

func matchColumn(src []rune, pos int) (schema.Column, int, bool) {
	nameEnd := scanWhile(src, pos, isWord)
	if nameEnd == pos {
		return schema.Column{}, pos, false
	}
	typeStart := scanWhile(src, nameEnd, unicode.IsSpace)
	if typeStart == nameEnd {
		return schema.Column{}, pos, false
	}
	typeEnd := scanWhile(src, typeStart, isWord)
	if typeEnd == typeStart {
		return schema.Column{}, pos, false
	}

	col := schema.Column{
		Name:    string(src[pos:nameEnd]),
		SQLType: string(src[typeStart:typeEnd]),
	}
	end := typeEnd
	if length, decimal, next, ok := scanArguments(src, end); ok {
		col.Length, col.Decimal = length, decimal
		end = next
	}
	if next, ok := scanNotNull(src, end); ok {
		col.NotNull = true
		end = next
	}
	return col, end, true
}

// scanArguments reads "(len)", "(len,)" or "(len,dec)" starting at pos.
// Values too large for an int still match the group but are left nil; a
// decimal is only kept alongside a length.
func scanArguments(src []rune, pos int) (length, decimal *int, end int, ok bool) {
	if pos >= len(src) || src[pos] != '(' {
		return nil, nil, pos, false
	}
	i := pos + 1
	lenEnd := scanWhile(src, i, isDigit)
	if lenEnd == i {
		return nil, nil, pos, false
	}
	length = atoi(src[i:lenEnd])
	i = lenEnd
	if i < len(src) && src[i] == ',' {
		i++
	}
	if decEnd := scanWhile(src, i, isDigit); decEnd > i {
		if length != nil {
			decimal = atoi(src[i:decEnd])
		}
		i = decEnd
	}
	if i >= len(src) || src[i] != ')' {
		return nil, nil, pos, false
	}
	return length, decimal, i + 1, true
}

func scanNotNull(src []rune, pos int) (int, bool) {
	i := scanWhile(src, pos, unicode.IsSpace)
	if i == pos {
		return pos, false
	}
	lit := []rune(notNull)
	if i+len(lit) > len(src) || string(src[i:i+len(lit)]) != notNull {
		return pos, false
	}
	return i + len(lit), true
}

func scanWhile(src []rune, pos int, pred func(rune) bool) int {
	for pos < len(src) && pred(src[pos]) {
		pos++
	}
	return pos
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isDigit matches ASCII digits only, like \d in Grammar
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// atoi returns nil when digits overflow int
func atoi(digits []rune) *int {
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return nil
	}
	return &n
}
