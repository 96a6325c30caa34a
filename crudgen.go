// Package crudgen generates Laravel CRUD scaffolding from a CREATE TABLE
// definition.
//
// One table definition produces a migration, an Eloquent model, a resource
// controller with store validation, and create/edit/index Blade views. All
// of them are rendered from a single parsed column sequence, so field names,
// order and nullability agree across files.
//
// # Quick Start
//
//	result, err := crudgen.Generate(crudgen.Request{
//		OutputRoot: "/path/to/laravel-app",
//		TableName:  "supplier",
//		DDLText:    "ruc varchar(11) NOT NULL, razonsocial varchar(100) NOT NULL, email varchar(50)",
//	}, nil)
//
// Render produces the same artifacts without touching the filesystem.
//
// # Output Layout
//
// For table name t with plural p and class name C:
//
//	database/migrations/<timestamp>_create_<p>_table.php
//	app/Models/<C>.php
//	app/Http/Controllers/<C>Controller.php
//	resources/views/<p>/{create,edit,index}.blade.php
//
// A routes fragment (web_routes.txt) and an AdminLTE menu fragment
// (adminlte_fragment.txt) are written to a separate auxiliary directory,
// ~/Desktop unless configured otherwise.
//
// # Resource Names
//
// By default the routes, views and migration use the fixed supplier profile
// (schema.SupplierResource): routes under "proveedores", a migration that
// creates "suppliers" and drops "proveedores". Set Options.DeriveResource to
// derive every name from the table instead.
package crudgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tordrt/crudgen/internal/db"
	"github.com/tordrt/crudgen/internal/ddl"
	"github.com/tordrt/crudgen/internal/formatter"
	"github.com/tordrt/crudgen/internal/schema"
)

// Request is one generation request.
type Request struct {
	// OutputRoot is the Laravel application directory. Required by Generate.
	OutputRoot string `json:"outputRoot"`

	// TableName is the singular table name, e.g. "supplier".
	TableName string `json:"tableName"`

	// DDLText holds the CREATE TABLE definition or just its column lines.
	DDLText string `json:"ddlText"`

	// ExistingRoutesText is the current routes/web.php content the routes
	// fragment is merged into. May be empty.
	ExistingRoutesText string `json:"existingRoutesText"`
}

func (r Request) normalized() Request {
	r.OutputRoot = strings.TrimSpace(r.OutputRoot)
	r.TableName = strings.TrimSpace(r.TableName)
	r.DDLText = strings.TrimSpace(r.DDLText)
	return r
}

// Validate checks every field Generate needs.
func (r Request) Validate() error {
	r = r.normalized()
	if r.OutputRoot == "" {
		return &RequestError{Field: "output root", Message: "is required"}
	}
	return r.validateSource()
}

func (r Request) validateSource() error {
	if r.TableName == "" {
		return &RequestError{Field: "table name", Message: "is required"}
	}
	if strings.ContainsAny(r.TableName, `/\`) || strings.Contains(r.TableName, "..") {
		return &RequestError{Field: "table name", Message: "must not contain path separators"}
	}
	if r.DDLText == "" {
		return &RequestError{Field: "DDL text", Message: "is required"}
	}
	return nil
}

// Options configures generation. The zero value uses the default scanner,
// "s" pluralization, the supplier resource profile and ~/Desktop for the
// auxiliary fragments.
type Options struct {
	// Parser reads the DDL text. Defaults to a ddl.Scanner.
	Parser ddl.Parser

	// StripHeader makes the default scanner skip a leading CREATE TABLE
	// header. Without it "CREATE TABLE" is read as a column like any other
	// word pair. Ignored when Parser is set.
	StripHeader bool

	// Inflection selects how the plural table name is derived.
	Inflection schema.Inflection

	// DeriveResource derives routes, views and migration table names from
	// the table instead of the fixed supplier profile.
	DeriveResource bool

	// Resource fields that are set override the selected profile.
	Resource schema.Resource

	// AuxDir receives the routes and menu fragments.
	AuxDir string

	// SkipFragments disables the routes and menu fragments.
	SkipFragments bool

	// Now supplies the migration timestamp. Defaults to time.Now.
	Now func() time.Time

	// Logger receives progress and warnings. Defaults to discarding.
	Logger *slog.Logger
}

func (o *Options) parser() ddl.Parser {
	if o.Parser != nil {
		return o.Parser
	}
	return &ddl.Scanner{StripHeader: o.StripHeader}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o *Options) resource(name, plural string) schema.Resource {
	base := schema.SupplierResource()
	if o.DeriveResource {
		base = schema.DerivedResource(name, plural)
	}
	return base.Override(o.Resource)
}

// DefaultAuxDir returns the directory fragments go to when none is configured.
func DefaultAuxDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, "Desktop"), nil
}

// Result holds the rendered artifacts and, after Generate, the paths written.
type Result struct {
	Table     schema.Table
	Artifacts []schema.Artifact
	Fragments []schema.Artifact
	Written   []string
}

// Render parses the DDL once and renders every artifact without writing
// anything. OutputRoot is not required.
func Render(req Request, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	req = req.normalized()
	if err := req.validateSource(); err != nil {
		return nil, err
	}

	columns := opts.parser().Parse(req.DDLText)
	plural := schema.Pluralize(req.TableName, opts.Inflection)
	table := schema.NewTable(req.TableName, columns, opts.Inflection, opts.resource(req.TableName, plural))

	logger := opts.logger()
	logger.Debug("parsed table definition", "table", table.Name, "columns", len(columns))
	if table.Resource.CreateTable != table.Plural || table.Resource.DropTable != table.Plural {
		logger.Warn("migration table names do not follow the table name",
			"table", table.Plural,
			"create", table.Resource.CreateTable,
			"drop", table.Resource.DropTable)
	}

	artifacts, err := formatter.RenderAll(formatter.NewContext(table, opts.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to render artifacts: %w", err)
	}
	result := &Result{Table: table, Artifacts: artifacts}

	if !opts.SkipFragments {
		routes, err := formatter.RoutesFragment(table.Resource, req.ExistingRoutesText)
		if err != nil {
			return nil, fmt.Errorf("failed to render routes fragment: %w", err)
		}
		menu, err := formatter.MenuFragment(table.Resource)
		if err != nil {
			return nil, fmt.Errorf("failed to render menu fragment: %w", err)
		}
		result.Fragments = []schema.Artifact{routes, menu}
	}

	return result, nil
}

// Generate validates the request, renders the artifacts and writes them
// under OutputRoot, then writes the fragments to the auxiliary directory.
//
// Writes are sequential and not rolled back: on a *WriteError the returned
// Result lists the files already written. Model, controller and views are
// overwritten on every run; the migration always gets a new timestamped name.
func Generate(req Request, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	req = req.normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := Render(req, opts)
	if err != nil {
		return nil, err
	}
	logger := opts.logger()

	written, err := formatter.NewMultiFileFormatter(req.OutputRoot).Write(result.Artifacts)
	result.Written = append(result.Written, written...)
	if err != nil {
		return result, newWriteError(err)
	}

	if len(result.Fragments) > 0 {
		auxDir := opts.AuxDir
		if auxDir == "" {
			if auxDir, err = DefaultAuxDir(); err != nil {
				return result, newWriteError(err)
			}
		}
		written, err = formatter.NewMultiFileFormatter(auxDir).Write(result.Fragments)
		result.Written = append(result.Written, written...)
		if err != nil {
			return result, newWriteError(err)
		}
	}

	for _, path := range result.Written {
		logger.Debug("wrote file", "path", path)
	}
	return result, nil
}

// SourceOptions configures DDLFromDatabase.
type SourceOptions struct {
	// SchemaName is the database schema. PostgreSQL defaults to "public",
	// MySQL to the database in the connection string.
	SchemaName string
}

// DDLFromDatabase reads the columns of an existing table and returns them
// as column lines, without a CREATE TABLE header, suitable for
// Request.DDLText.
//
// Supported URL schemes:
//   - postgres:// or postgresql://
//   - mysql://
//   - sqlite://
//
// The Laravel-managed columns id, created_at and updated_at are left out
// since the migration declares them itself.
func DDLFromDatabase(ctx context.Context, databaseURL, table string, opts *SourceOptions) (string, error) {
	if opts == nil {
		opts = &SourceOptions{}
	}
	if strings.TrimSpace(table) == "" {
		return "", &RequestError{Field: "source table", Message: "is required"}
	}

	source, err := db.Connect(ctx, databaseURL, opts.SchemaName)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := source.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close database connection: %v\n", err)
		}
	}()

	columns, err := source.ExtractColumns(ctx, table)
	if err != nil {
		return "", fmt.Errorf("failed to extract columns: %w", err)
	}
	return ddl.Format(columns), nil
}
