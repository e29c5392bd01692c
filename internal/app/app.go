// =============================================================================
// SW Maps to Emlid Converter - Application Runner
// =============================================================================
//
// This module is the single top-level handler around the pure conversion:
//
//   1. Check that an input and an output path were chosen
//   2. Read the input (CSV or XLSX)
//   3. Convert
//   4. Write the output
//   5. Notify the user and optionally reveal the output folder
//
// Every failure in steps 2-4 is reported once through the Notifier and
// returned. A missing path is a cancellation, not a failure.
//
// =============================================================================

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/swmaps2emlid/internal/config"
	"github.com/ginjaninja78/swmaps2emlid/internal/converter"
	"github.com/ginjaninja78/swmaps2emlid/internal/csvparser"
	"github.com/ginjaninja78/swmaps2emlid/internal/csvwriter"
	"github.com/ginjaninja78/swmaps2emlid/internal/logging"
	"github.com/ginjaninja78/swmaps2emlid/internal/types"
	"github.com/ginjaninja78/swmaps2emlid/internal/xlsxparser"
	"github.com/ginjaninja78/swmaps2emlid/pkg/utils"
)

var (
	// ErrCancelled is returned when no input or output path was chosen.
	ErrCancelled = errors.New("cancelled by user")

	// ErrOutputIsInput is returned when the output would replace the input.
	ErrOutputIsInput = errors.New("output path is the input file")
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Notifier shows messages to the user. Calls are fire-and-forget.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

// Revealer opens a directory in the platform file browser.
type Revealer interface {
	Reveal(dir string) error
}

// Request names the files of one run.
type Request struct {
	InputPath  string
	OutputPath string
}

// Outcome summarises a successful run.
type Outcome struct {
	OutputPath string
	Stats      converter.Stats
}

// =============================================================================
// APP
// =============================================================================

// App wires the reader, converter and writer to the user-facing collaborators.
type App struct {
	cfg      *config.Config
	notifier Notifier
	revealer Revealer
	logger   *slog.Logger
}

// New creates an App. revealer may be nil; logger may be nil.
func New(cfg *config.Config, notifier Notifier, revealer Revealer, logger *slog.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		cfg:      cfg,
		notifier: notifier,
		revealer: revealer,
		logger:   logger,
	}
}

// Run performs one conversion.
func (a *App) Run(req Request) (*Outcome, error) {
	if strings.TrimSpace(req.InputPath) == "" {
		a.notifier.Info("Cancelled", "No input file selected. Exiting.")
		return nil, ErrCancelled
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		a.notifier.Info("Cancelled", "No output file selected. Exiting.")
		return nil, ErrCancelled
	}

	outcome, err := a.convert(req)
	if err != nil {
		a.logger.Error("conversion failed", "input", req.InputPath, "error", err)
		a.notifier.Error("Error", fmt.Sprintf("An error occurred: %v", err))
		return nil, err
	}

	a.logger.Info("conversion complete",
		"input", req.InputPath,
		"output", outcome.OutputPath,
		"rows", outcome.Stats.Rows,
		"fields_detected", outcome.Stats.FieldsDetected,
		"invalid_timestamps", outcome.Stats.InvalidTimestamps,
	)
	a.notifier.Info("Success", fmt.Sprintf("Conversion complete.\nSaved as:\n%s", outcome.OutputPath))

	if a.cfg.RevealOutput && a.revealer != nil {
		dir := filepath.Dir(outcome.OutputPath)
		if err := a.revealer.Reveal(dir); err != nil {
			a.logger.Warn("failed to open output folder", "dir", dir, "error", err)
		}
	}

	return outcome, nil
}

func (a *App) convert(req Request) (*Outcome, error) {
	if samePath(req.InputPath, req.OutputPath) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, req.OutputPath)
	}

	table, err := ReadTable(req.InputPath, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.InputPath, err)
	}
	a.logger.Debug("input read", "path", req.InputPath, "rows", table.Len(), "columns", len(table.Headers))

	result, err := converter.Convert(table, converter.Options{
		Aliases: a.cfg.AliasTable(),
		Logger:  a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert: %w", err)
	}

	if utils.FileExists(req.OutputPath) {
		a.logger.Info("replacing existing output", "path", req.OutputPath)
	}
	if err := csvwriter.WriteFile(req.OutputPath, result.Records); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", req.OutputPath, err)
	}

	return &Outcome{OutputPath: req.OutputPath, Stats: result.Stats}, nil
}

// samePath reports whether a and b name the same file, either lexically
// after resolving to absolute paths or, when both exist, on disk (links,
// case-insensitive filesystems).
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// =============================================================================
// INPUT SELECTION
// =============================================================================

// ReadTable reads path with the reader matching its extension: .xlsx and
// .xlsm go to the spreadsheet reader, everything else is read as CSV.
func ReadTable(path string, cfg *config.Config) (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return xlsxparser.Parse(path, cfg.XLSXSettings)
	default:
		return csvparser.Parse(path, cfg.CSVSettings)
	}
}
