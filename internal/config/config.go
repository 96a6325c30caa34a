// Package config loads crudgen settings from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tordrt/crudgen/internal/schema"
)

// DefaultFile is read from the working directory when no file is named
const DefaultFile = "crudgen.yaml"

// DefaultAddr is where the HTTP server listens unless configured
const DefaultAddr = "127.0.0.1:8080"

// Environment variables, applied over the YAML file
const (
	EnvOutputRoot     = "CRUDGEN_OUTPUT_ROOT"
	EnvAuxDir         = "CRUDGEN_AUX_DIR"
	EnvAddr           = "CRUDGEN_ADDR"
	EnvAllowedOrigins = "CRUDGEN_ALLOWED_ORIGINS"
	EnvAllowedRoots   = "CRUDGEN_ALLOWED_ROOTS"
	EnvPluralize      = "CRUDGEN_PLURALIZE"
	EnvDeriveNames    = "CRUDGEN_DERIVE_NAMES"
)

// Config is the merged configuration
type Config struct {
	OutputRoot string `yaml:"output_root"`
	Table      string `yaml:"table"`
	DDLFile    string `yaml:"ddl_file"`
	RoutesFile string `yaml:"routes_file"`
	AuxDir     string `yaml:"aux_dir"`
	Fragments  *bool  `yaml:"fragments"`

	// StripHeader skips a leading CREATE TABLE header before parsing
	StripHeader bool `yaml:"strip_header"`

	Naming   Naming          `yaml:"naming"`
	Resource schema.Resource `yaml:"resource"`
	Server   Server          `yaml:"server"`
}

// Naming controls how names are derived from the table
type Naming struct {
	Pluralize      string `yaml:"pluralize"`
	DeriveResource bool   `yaml:"derive_resource"`
}

// Server configures `crudgen serve`
type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedRoots limits the output roots /api/v1/generate may write to.
	// Empty allows any path.
	AllowedRoots []string `yaml:"allowed_roots"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Naming: Naming{Pluralize: schema.InflectSuffix.String()},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// DefaultFile when path is empty and it exists), a .env file in the working
// directory and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = DefaultFile
	}
	if err := cfg.loadFile(file); err != nil {
		// Only a missing default file is tolerated
		if path != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvOutputRoot); ok {
		c.OutputRoot = v
	}
	if v, ok := lookup(EnvAuxDir); ok {
		c.AuxDir = v
	}
	if v, ok := lookup(EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvAllowedOrigins); ok {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(EnvAllowedRoots); ok {
		c.Server.AllowedRoots = splitList(v)
	}
	if v, ok := lookup(EnvPluralize); ok {
		c.Naming.Pluralize = v
	}
	if v, ok := lookup(EnvDeriveNames); ok {
		derive, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDeriveNames, err)
		}
		c.Naming.DeriveResource = derive
	}
	return nil
}

// Inflection returns the configured pluralization mode
func (c *Config) Inflection() (schema.Inflection, error) {
	return schema.ParseInflection(c.Naming.Pluralize)
}

// FragmentsEnabled reports whether the routes and menu fragments are written
func (c *Config) FragmentsEnabled() bool {
	return c.Fragments == nil || *c.Fragments
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
