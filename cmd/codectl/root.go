package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/joshuapare/codectable/internal/config"
	"github.com/joshuapare/codectable/internal/logging"
	"github.com/joshuapare/codectable/pkg/types"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	configPath string
	tablePath  string
	schemaName string
)

var rootCmd = &cobra.Command{
	Use:   "codectl",
	Short: "Validate and maintain a multicodec table",
	Long: `codectl checks a multicodec table (a column-aligned CSV of names, tags
and codes) against its schema, keeps the mimetype block in step with the IANA
media types registry, and rewrites the table with its columns aligned.

Settings are read from codectl.toml when present; flags override them.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Path to config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&tablePath, "table", "", "Path to the table (default from config)")
	rootCmd.PersistentFlags().
		StringVar(&schemaName, "schema", "", "Schema generation: legacy, tagged, or strict (default from config)")
}

func execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings is the configuration one command runs with, after flags and the
// positional table argument are applied over the config file.
type settings struct {
	cfg     config.Config
	table   string
	schema  types.Schema
	catalog *types.Catalog
	log     zerolog.Logger
}

func loadSettings(args []string) (*settings, error) {
	path, optional := configPath, false
	if path == "" {
		path, optional = config.DefaultPath, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}

	if tablePath != "" {
		cfg.Table = tablePath
	}
	if len(args) > 0 {
		cfg.Table = args[0]
	}
	if schemaName != "" {
		cfg.Schema = schemaName
	}

	schema, err := cfg.SchemaDef()
	if err != nil {
		return nil, err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	var flagLevel string
	switch {
	case quiet:
		flagLevel = "error"
	case verbose:
		flagLevel = "debug"
	}

	return &settings{
		cfg:     cfg,
		table:   cfg.Table,
		schema:  schema,
		catalog: cat,
		log: logging.New(logging.Options{
			Level:      cfg.LogLevel,
			ForceLevel: flagLevel,
			NoColor:    noColor,
			JSON:       jsonOut,
			Out:        os.Stderr,
		}),
	}, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
