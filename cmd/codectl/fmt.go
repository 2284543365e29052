package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/codectable/pkg/registry"
)

var errNotFormatted = errors.New("table is not formatted")

var fmtCheck bool

func init() {
	cmd := newFmtCmd()
	cmd.Flags().BoolVar(&fmtCheck, "check", false, "Report whether the table needs formatting without writing it")
	rootCmd.AddCommand(cmd)
}

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [table]",
		Short: "Align the table's columns",
		Long: `The fmt command rewrites the table so every cell of a column starts at
the same byte offset. Cell values and row order are not changed.

Example:
  codectl fmt
  codectl fmt table.csv --check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args)
		},
	}
	return cmd
}

func runFmt(args []string) error {
	s, err := loadSettings(args)
	if err != nil {
		return err
	}

	changed, err := registry.FormatFile(s.table, &registry.FormatOptions{Check: fmtCheck})
	if err != nil {
		return err
	}

	if jsonOut {
		if err := printJSON(map[string]interface{}{
			"file":    s.table,
			"changed": changed,
			"check":   fmtCheck,
		}); err != nil {
			return err
		}
	}

	switch {
	case fmtCheck && changed:
		return fmt.Errorf("%w: %s", errNotFormatted, s.table)
	case jsonOut:
		return nil
	case changed:
		printInfo("%s: formatted\n", s.table)
	default:
		printVerbose("%s: already formatted\n", s.table)
	}
	return nil
}
