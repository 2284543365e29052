package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joshuapare/codectable/internal/codec"
	"github.com/joshuapare/codectable/internal/iana"
	"github.com/joshuapare/codectable/pkg/registry"
)

var (
	syncSource string
	syncDryRun bool
	syncBackup bool
)

func init() {
	cmd := newSyncCmd()
	cmd.Flags().StringVar(&syncSource, "source", "", "Registry URL or local file (default from config)")
	cmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Compute changes without writing the table")
	cmd.Flags().BoolVar(&syncBackup, "backup", false, "Copy the table to <table>.bak before writing")
	rootCmd.AddCommand(cmd)
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [table]",
		Short: "Add new IANA media types to the mimetype block",
		Long: `The sync command fetches the IANA media types registry and gives every
media type the table does not list yet the next free code in its section.
Existing codes are never changed. The existing mimetype block must be
contiguous and sequential; otherwise the table is left untouched.

The table is replaced atomically.

Example:
  codectl sync
  codectl sync table.csv --dry-run -v
  codectl sync --source ./media-types.xml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), args)
		},
	}
	return cmd
}

type syncAssignment struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type syncSummary struct {
	File     string           `json:"file"`
	Source   string           `json:"source"`
	Existing int              `json:"existing"`
	Added    []syncAssignment `json:"added"`
	Written  bool             `json:"written"`
	DryRun   bool             `json:"dry_run"`
}

func runSync(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := loadSettings(args)
	if err != nil {
		return err
	}

	loc := s.cfg.Source
	if syncSource != "" {
		loc = syncSource
	}
	printVerbose("Syncing %s from %s\n", s.table, loc)

	res, err := registry.SyncFile(ctx, s.table, iana.FromLocation(loc, s.log), &registry.SyncOptions{
		Schema:       s.schema,
		Catalog:      s.catalog,
		DryRun:       syncDryRun,
		CreateBackup: syncBackup,
		Logger:       s.log,
	})
	if err != nil {
		printError("%s was not modified\n", s.table)
		return err
	}

	summary := syncSummary{
		File:     s.table,
		Source:   loc,
		Existing: res.Existing,
		Added:    make([]syncAssignment, 0, len(res.Added)),
		Written:  res.Written,
		DryRun:   syncDryRun,
	}
	for _, a := range res.Added {
		summary.Added = append(summary.Added, syncAssignment{Name: a.Name, Code: codec.Encode(a.Code)})
	}

	if jsonOut {
		return printJSON(summary)
	}

	for _, a := range summary.Added {
		printVerbose("  %s  %s\n", a.Code, a.Name)
	}
	switch {
	case len(summary.Added) == 0:
		printInfo("%s: up to date (%d media types)\n", s.table, summary.Existing)
	case syncDryRun:
		printInfo("%s: would add %d media type(s) (dry run)\n", s.table, len(summary.Added))
	default:
		printInfo("%s: added %d media type(s), %d existing\n", s.table, len(summary.Added), summary.Existing)
	}
	return nil
}
