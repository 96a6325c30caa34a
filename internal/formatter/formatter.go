// Package formatter renders Laravel scaffolding from a parsed table.
package formatter

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/tordrt/crudgen/internal/schema"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Blade uses {{ }}, so templates use [[ ]]
var templates = template.Must(template.New("crudgen").
	Delims("[[", "]]").
	Funcs(template.FuncMap{"upper": strings.ToUpper}).
	ParseFS(templateFS, "templates/*.tmpl"))

// Generator renders one artifact from the shared context
type Generator struct {
	Kind     schema.ArtifactKind
	Template string
	Filename func(c *Context) string
}

// Generate executes the generator's template
func (g Generator) Generate(c *Context) (schema.Artifact, error) {
	content, err := execute(g.Template, c)
	if err != nil {
		return schema.Artifact{}, err
	}
	return schema.Artifact{
		Kind:     g.Kind,
		Filename: g.Filename(c),
		Content:  content,
	}, nil
}

// Generators lists the scaffolding generators in write order
var Generators = []Generator{
	MigrationGenerator,
	ModelGenerator,
	ControllerGenerator,
	CreateViewGenerator,
	EditViewGenerator,
	IndexViewGenerator,
}

// RenderAll runs every generator against the same context
func RenderAll(c *Context) ([]schema.Artifact, error) {
	artifacts := make([]schema.Artifact, 0, len(Generators))
	for _, g := range Generators {
		a, err := g.Generate(c)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %q: %w", name, err)
	}
	return buf.String(), nil
}
