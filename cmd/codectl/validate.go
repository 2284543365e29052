package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/codectable/pkg/registry"
)

var errValidationFailed = errors.New("validation failed")

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [table]",
		Short: "Check the table against its schema",
		Long: `The validate command runs every check the schema generation enables and
prints one "row N: reason" line per violation to stderr. Every row is
checked; the command does not stop at the first violation.

Schema generations:
  legacy - name, code, description
  tagged - name, tag, code, description
  strict - name, tag, code, status, description, with alignment,
           ordering, naming and reserved-range checks

Example:
  codectl validate
  codectl validate table.csv --schema tagged
  codectl validate --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	s, err := loadSettings(args)
	if err != nil {
		return err
	}

	printVerbose("Validating table: %s (schema %s)\n", s.table, s.schema.Name)

	report, err := registry.ValidateFile(s.table, s.schema, s.catalog)
	if err != nil {
		return err
	}
	s.log.Debug().
		Int("rows", report.Rows).
		Int("errors", report.Summary.Errors).
		Dur("scan_time", report.ScanTime).
		Msg("validation finished")

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		fmt.Fprint(os.Stderr, report.FormatLines())
		printVerbose("\n%s", report.FormatSummary())
	}

	if !report.OK() {
		return fmt.Errorf("%w: %s has %d violation(s)", errValidationFailed, s.table, report.Summary.Errors)
	}

	if !jsonOut {
		printInfo("%s: OK (%d rows)\n", s.table, report.Rows)
	}
	return nil
}
