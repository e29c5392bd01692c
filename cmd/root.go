// =============================================================================
// SW Maps to Emlid Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (swmaps2emlid)
//   ├── convertCmd (swmaps2emlid convert)
//   ├── inspectCmd (swmaps2emlid inspect)
//   └── versionCmd (swmaps2emlid version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --log-format)
//   2. Loading the YAML configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ginjaninja78/swmaps2emlid/internal/config"
	"github.com/ginjaninja78/swmaps2emlid/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// errReported marks errors the user has already been told about, so Execute
// does not print them a second time.
var errReported = errors.New("already reported")

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// rootOptions holds the persistent flags and the state they produce. It is
// filled by PersistentPreRunE and read by every subcommand.
type rootOptions struct {
	// cfgFile is the path to the configuration file (--config).
	cfgFile string

	// verbose forces debug logging (--verbose).
	verbose bool

	// logFormat overrides log_format from the config file (--log-format).
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "swmaps2emlid",
		Short: "SW Maps to Emlid Converter - Turn SW Maps GNSS exports into Emlid Flow CSV",
		Long: `SW Maps to Emlid Converter reads a point export from the SW Maps mobile
mapping app and writes the fixed 37-column CSV that Emlid Flow imports.

Key Features:
  - Automatic detection of name, time, coordinate and antenna height columns
  - Timestamp normalization into Emlid averaging windows
  - CSV and XLSX input
  - Optional YAML configuration for delimiters, naming and column aliases

Example Usage:
  swmaps2emlid convert points.csv                 # Writes emlid.csv beside the input
  swmaps2emlid convert points.csv -o out.csv      # Choose the output path
  swmaps2emlid inspect points.csv                 # Show detected columns only`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},

		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print the help message.
			_ = cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&opts.logFormat,
		"log-format",
		"",
		`Log format, "text" or "json" (overrides log_format)`,
	)

	rootCmd.AddCommand(
		newConvertCmd(opts),
		newInspectCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// init loads the configuration and builds the logger. An explicitly named
// config file must exist; the default one is optional.
func (o *rootOptions) init(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(o.cfgFile)
	} else {
		cfg, err = config.LoadOrDefault(o.cfgFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat).
		With("run_id", uuid.NewString())

	o.logger.Debug("configuration loaded", "path", o.cfgFile, "reveal_output", cfg.RevealOutput)
	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
