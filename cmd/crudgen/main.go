package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tordrt/crudgen"
	"github.com/tordrt/crudgen/internal/config"
	"github.com/tordrt/crudgen/internal/schema"
	"github.com/tordrt/crudgen/internal/watch"
)

var (
	configPath  string
	outputRoot  string
	tableName   string
	ddlFile     string
	ddlText     string
	routesFile  string
	auxDir      string
	noFragments bool
	deriveNames bool
	stripHeader bool
	pluralize   string
	dryRun      bool
	dbURL       string
	mysqlURL    string
	sqlitePath  string
	sourceTable string
	schemaName  string
	watchMode   bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "crudgen",
	Short: "Generate Laravel CRUD scaffolding from a CREATE TABLE definition",
	Long: `crudgen reads a CREATE TABLE definition (from a file, stdin, a flag or a live
PostgreSQL, MySQL or SQLite table) and writes a migration, an Eloquent model,
a resource controller with validation and create/edit/index Blade views into
a Laravel application. Routes and menu fragments go to an auxiliary directory.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./crudgen.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	rootCmd.Flags().StringVarP(&outputRoot, "output-root", "o", "", "Laravel application directory")
	rootCmd.Flags().StringVarP(&tableName, "table", "t", "", "Singular table name, e.g. supplier")
	rootCmd.Flags().StringVarP(&ddlFile, "ddl-file", "f", "", "File holding the CREATE TABLE definition (- for stdin)")
	rootCmd.Flags().StringVar(&ddlText, "ddl", "", "CREATE TABLE definition or column lines")
	rootCmd.Flags().StringVar(&routesFile, "routes-file", "", "Existing routes/web.php merged into the routes fragment")
	rootCmd.Flags().StringVar(&auxDir, "aux-dir", "", "Directory for the routes and menu fragments (default: ~/Desktop)")
	rootCmd.Flags().BoolVar(&noFragments, "no-fragments", false, "Skip the routes and menu fragments")
	rootCmd.Flags().BoolVar(&deriveNames, "derive-names", false, "Derive routes, views and migration tables from the table name")
	rootCmd.Flags().BoolVar(&stripHeader, "strip-header", false, "Skip a leading CREATE TABLE header instead of reading it as a column")
	rootCmd.Flags().StringVar(&pluralize, "pluralize", "", "Plural form: suffix or english (default: suffix)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the artifacts instead of writing them")
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "Read columns from a PostgreSQL table")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "Read columns from a MySQL table")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Read columns from a SQLite database file")
	rootCmd.Flags().StringVar(&sourceTable, "source-table", "", "Database table to read (default: the plural table name)")
	rootCmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Database schema name (default: public for PostgreSQL)")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Regenerate whenever --ddl-file changes")

	rootCmd.AddCommand(serveCmd)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig merges the config file and environment with the flags that
// were set on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("output-root", &cfg.OutputRoot, outputRoot)
	override("table", &cfg.Table, tableName)
	override("ddl-file", &cfg.DDLFile, ddlFile)
	override("routes-file", &cfg.RoutesFile, routesFile)
	override("aux-dir", &cfg.AuxDir, auxDir)
	override("pluralize", &cfg.Naming.Pluralize, pluralize)
	if flags.Changed("derive-names") {
		cfg.Naming.DeriveResource = deriveNames
	}
	if flags.Changed("strip-header") {
		cfg.StripHeader = stripHeader
	}
	if flags.Changed("no-fragments") {
		enabled := !noFragments
		cfg.Fragments = &enabled
	}
	return cfg, nil
}

func buildOptions(cfg *config.Config, logger *slog.Logger) (crudgen.Options, error) {
	inflection, err := cfg.Inflection()
	if err != nil {
		return crudgen.Options{}, err
	}
	return crudgen.Options{
		Inflection:     inflection,
		DeriveResource: cfg.Naming.DeriveResource,
		StripHeader:    cfg.StripHeader,
		Resource:       cfg.Resource,
		AuxDir:         cfg.AuxDir,
		SkipFragments:  !cfg.FragmentsEnabled(),
		Logger:         logger,
	}, nil
}

// ddlSource describes where the column definitions come from
type ddlSource struct {
	file        string
	text        string
	databaseURL string
}

// resolveSource picks the single DDL source. A ddl_file from the config
// file only applies when no source flag is given.
func resolveSource(cfg *config.Config, fileFlag bool, text, pgURL, myURL, sqlite string) (ddlSource, error) {
	var sources []ddlSource
	if cfg.DDLFile != "" && (fileFlag || text == "" && pgURL == "" && myURL == "" && sqlite == "") {
		sources = append(sources, ddlSource{file: cfg.DDLFile})
	}
	if text != "" {
		sources = append(sources, ddlSource{text: text})
	}
	if pgURL != "" {
		sources = append(sources, ddlSource{databaseURL: pgURL})
	}
	if myURL != "" {
		if !strings.HasPrefix(myURL, "mysql://") {
			myURL = "mysql://" + myURL
		}
		sources = append(sources, ddlSource{databaseURL: myURL})
	}
	if sqlite != "" {
		sources = append(sources, ddlSource{databaseURL: "sqlite://" + sqlite})
	}

	switch len(sources) {
	case 0:
		return ddlSource{}, fmt.Errorf("one of --ddl-file, --ddl, --db-url, --mysql-url, or --sqlite must be specified")
	case 1:
		return sources[0], nil
	default:
		return ddlSource{}, fmt.Errorf("only one of --ddl-file, --ddl, --db-url, --mysql-url, or --sqlite can be specified")
	}
}

func (s ddlSource) load(ctx context.Context, stdin io.Reader, table string) (string, error) {
	switch {
	case s.databaseURL != "":
		return crudgen.DDLFromDatabase(ctx, s.databaseURL, table, &crudgen.SourceOptions{SchemaName: schemaName})
	case s.file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read DDL from stdin: %w", err)
		}
		return string(data), nil
	case s.file != "":
		data, err := os.ReadFile(s.file)
		if err != nil {
			return "", fmt.Errorf("failed to read DDL file: %w", err)
		}
		return string(data), nil
	default:
		return s.text, nil
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	opts, err := buildOptions(cfg, logger)
	if err != nil {
		return err
	}

	source, err := resolveSource(cfg, cmd.Flags().Changed("ddl-file"), ddlText, dbURL, mysqlURL, sqlitePath)
	if err != nil {
		return err
	}
	if watchMode && (source.file == "" || source.file == "-") {
		return fmt.Errorf("--watch requires --ddl-file with a file path")
	}
	if watchMode && dryRun {
		return fmt.Errorf("cannot use both --watch and --dry-run")
	}

	table := sourceTable
	if table == "" && cfg.Table != "" {
		table = schema.Pluralize(cfg.Table, opts.Inflection)
	}

	pipeline := func(ctx context.Context) error {
		text, err := source.load(ctx, cmd.InOrStdin(), table)
		if err != nil {
			return err
		}

		req := crudgen.Request{
			OutputRoot: cfg.OutputRoot,
			TableName:  cfg.Table,
			DDLText:    text,
		}
		if cfg.RoutesFile != "" {
			routes, err := os.ReadFile(cfg.RoutesFile)
			if err != nil {
				return fmt.Errorf("failed to read routes file: %w", err)
			}
			req.ExistingRoutesText = string(routes)
		}

		if dryRun {
			return printArtifacts(cmd.OutOrStdout(), req, &opts)
		}

		result, err := crudgen.Generate(req, &opts)
		if err != nil {
			return err
		}
		logger.Info("generated scaffolding", "table", result.Table.Name, "files", len(result.Written))
		for _, path := range result.Written {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	}

	if err := pipeline(ctx); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}

	w, err := watch.New(source.file, watch.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "path", source.file)
	return w.Run(ctx, pipeline)
}

func printArtifacts(w io.Writer, req crudgen.Request, opts *crudgen.Options) error {
	result, err := crudgen.Render(req, opts)
	if err != nil {
		return err
	}
	for _, a := range append(result.Artifacts, result.Fragments...) {
		fmt.Fprintf(w, "==> %s <==\n%s\n", a.Filename, a.Content)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
