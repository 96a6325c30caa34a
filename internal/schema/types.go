package schema

import "fmt"

// Column represents one column parsed from a CREATE TABLE definition
type Column struct {
	Name    string
	SQLType string
	Length  *int
	Decimal *int
	NotNull bool
}

// HasLength reports whether the column declared a length argument
func (c Column) HasLength() bool {
	return c.Length != nil
}

// HasDecimal reports whether the column declared a decimal argument
func (c Column) HasDecimal() bool {
	return c.Decimal != nil
}

// Table is the generation context for a single resource
type Table struct {
	Name     string // singular, as supplied by the caller
	Plural   string
	Columns  []Column
	Resource Resource
}

// NewTable builds a table context, deriving the plural with the given inflection
func NewTable(name string, columns []Column, inflection Inflection, resource Resource) Table {
	return Table{
		Name:     name,
		Plural:   Pluralize(name, inflection),
		Columns:  columns,
		Resource: resource,
	}
}

// ClassName returns the model class name
func (t Table) ClassName() string {
	return Capitalize(t.Name)
}

// ControllerName returns the controller class name
func (t Table) ControllerName() string {
	return t.ClassName() + "Controller"
}

// ArtifactKind identifies a generated file
type ArtifactKind int

const (
	KindMigration ArtifactKind = iota
	KindModel
	KindController
	KindViewCreate
	KindViewEdit
	KindViewIndex
	KindRoutesFragment
	KindMenuFragment
)

var kindNames = map[ArtifactKind]string{
	KindMigration:      "migration",
	KindModel:          "model",
	KindController:     "controller",
	KindViewCreate:     "view_create",
	KindViewEdit:       "view_edit",
	KindViewIndex:      "view_index",
	KindRoutesFragment: "routes_fragment",
	KindMenuFragment:   "menu_fragment",
}

func (k ArtifactKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name
func (k ArtifactKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *ArtifactKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown artifact kind: %s", text)
}

// Artifact is one rendered file. Filename is relative to its destination root.
type Artifact struct {
	Kind     ArtifactKind `json:"kind"`
	Filename string       `json:"filename"`
	Content  string       `json:"content"`
}
