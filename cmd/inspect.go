// =============================================================================
// SW Maps to Emlid Converter - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, a dry run of column detection.
// Nothing is written to disk.
//
// COMMAND USAGE:
//   swmaps2emlid inspect <input>
//
// OUTPUT:
//   File:    points.csv
//   Rows:    12
//
//   FIELD           COLUMN
//   name            name
//   time            timestamp
//   ...
//   antenna_height  -
//
//   Timestamps: 11 parsed, 1 invalid
//
// =============================================================================

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/ginjaninja78/swmaps2emlid/internal/app"
	"github.com/ginjaninja78/swmaps2emlid/internal/converter"
	"github.com/ginjaninja78/swmaps2emlid/internal/emlid"
	"github.com/ginjaninja78/swmaps2emlid/internal/fields"
	"github.com/spf13/cobra"
)

// newInspectCmd creates the 'inspect' command.
func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show which input columns would be used",
		Long: `Inspect reads an export and prints the column detected for each field
and how many timestamps can be parsed, without writing any output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := app.ReadTable(args[0], root.cfg)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			result, err := converter.Convert(table, converter.Options{
				Aliases: root.cfg.AliasTable(),
				Logger:  root.logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:    %s\n", args[0])
			fmt.Fprintf(out, "Rows:    %d\n\n", result.Stats.Rows)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tCOLUMN")
			for _, kind := range fields.Kinds {
				col := "-"
				if result.Detection.Has(kind) {
					col = result.Detection.Column(kind)
				}
				fmt.Fprintf(tw, "%s\t%s\n", kind, col)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if result.Detection.Has(fields.Time) {
				parsed := 0
				for _, r := range result.Records {
					if r[emlid.AveragingStart] != "" {
						parsed++
					}
				}
				fmt.Fprintf(out, "\nTimestamps: %d parsed, %d invalid\n", parsed, result.Stats.InvalidTimestamps)
			} else {
				fmt.Fprintln(out, "\nTimestamps: no time column")
			}

			return nil
		},
	}
}
