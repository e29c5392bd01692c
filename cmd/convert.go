// =============================================================================
// SW Maps to Emlid Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool. It
// hands one input file to the application runner.
//
// COMMAND USAGE:
//   swmaps2emlid convert [input] [flags]
//
// FLAGS:
//   --output, -o : Output CSV path (default: output_name beside the input)
//   --reveal     : Open the output folder after a successful conversion
//   --delimiter  : Input CSV delimiter (overrides csv_settings.delimiter)
//   --sheet      : Worksheet to read from XLSX input
//
// EXIT STATUS:
//   0 on success or when no input was given (cancellation)
//   1 on any read, conversion or write failure
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/ginjaninja78/swmaps2emlid/internal/app"
	"github.com/ginjaninja78/swmaps2emlid/pkg/utils"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// convertOptions holds the flags of the convert command.
type convertOptions struct {
	output    string
	reveal    bool
	delimiter string
	sheet     string
}

// newConvertCmd creates the 'convert' command.
func newConvertCmd(root *rootOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert a SW Maps export to an Emlid Flow CSV",
		Long: `Convert reads a SW Maps CSV or XLSX export, detects its columns and
writes a 37-column Emlid Flow CSV.

When --output is omitted the output is written beside the input, named
from the output_name setting (default "emlid.csv").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output CSV path")
	cmd.Flags().BoolVar(&opts.reveal, "reveal", false, "Open the output folder when done")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", "", `Input delimiter: a character, "tab", "pipe" or "semicolon"`)
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet to read from XLSX input")

	return cmd
}

// runConvert executes the convert command.
func runConvert(cmd *cobra.Command, root *rootOptions, opts *convertOptions, args []string) error {
	cfg := root.cfg

	if cmd.Flags().Changed("delimiter") {
		cfg.CSVSettings.Delimiter = opts.delimiter
	}
	if cmd.Flags().Changed("sheet") {
		cfg.XLSXSettings.Sheet = opts.sheet
	}
	if cmd.Flags().Changed("reveal") {
		cfg.RevealOutput = opts.reveal
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var input string
	if len(args) > 0 {
		input = args[0]
	}

	output := opts.output
	if output == "" && input != "" {
		output = utils.ResolveOutputPath(input, cfg.OutputName, clockwork.NewRealClock())
	}

	notifier := &consoleNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	runner := app.New(cfg, notifier, utils.OSRevealer{}, root.logger)

	_, err := runner.Run(app.Request{InputPath: input, OutputPath: output})
	switch {
	case err == nil, errors.Is(err, app.ErrCancelled):
		return nil
	default:
		return fmt.Errorf("%w: %w", errReported, err)
	}
}

// =============================================================================
// CONSOLE NOTIFIER
// =============================================================================

// consoleNotifier prints user messages to the command's output streams.
type consoleNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n *consoleNotifier) Info(title, message string) {
	fmt.Fprintf(n.out, "%s: %s\n", title, message)
}

func (n *consoleNotifier) Error(title, message string) {
	fmt.Fprintf(n.errOut, "%s: %s\n", title, message)
}
