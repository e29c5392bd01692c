// =============================================================================
// SW Maps to Emlid Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It turns an input table
// into Emlid Flow records without touching the filesystem.
//
// CONVERSION PIPELINE:
//   1. Detect the column carrying each semantic field
//   2. Normalize the time column into averaging windows
//   3. Map every input row onto a fixed 37-column record
//
// Row count and row order are preserved. Unmatched fields and unparseable
// timestamps produce empty values, never errors.
//
// =============================================================================

package converter

import (
	"errors"
	"log/slog"

	"github.com/ginjaninja78/swmaps2emlid/internal/emlid"
	"github.com/ginjaninja78/swmaps2emlid/internal/fields"
	"github.com/ginjaninja78/swmaps2emlid/internal/logging"
	"github.com/ginjaninja78/swmaps2emlid/internal/timefmt"
	"github.com/ginjaninja78/swmaps2emlid/internal/types"
)

// ErrNoTable is returned when Convert is called without input.
var ErrNoTable = errors.New("no input table")

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures a conversion.
type Options struct {
	// Aliases is the alias table used for detection.
	// Default: fields.DefaultAliases()
	Aliases fields.AliasTable

	// Logger receives detection details at debug level.
	// Default: a discarding logger.
	Logger *slog.Logger
}

// Result is the outcome of converting one table.
type Result struct {
	// Records holds one output record per input row, in input order.
	Records []emlid.Record

	// Detection records which input column was used for each field.
	Detection fields.Detection

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about a conversion.
type Stats struct {
	// Rows is the number of input (and output) rows.
	Rows int

	// FieldsDetected is the number of semantic fields matched to a column.
	FieldsDetected int

	// InvalidTimestamps counts rows whose timestamp was present but could
	// not be parsed.
	InvalidTimestamps int
}

// =============================================================================
// MAIN CONVERSION FUNCTION
// =============================================================================

// Convert runs detection, time normalization and row mapping over table.
func Convert(table *types.Table, opts Options) (*Result, error) {
	if table == nil {
		return nil, ErrNoTable
	}

	aliases := opts.Aliases
	if aliases == nil {
		aliases = fields.DefaultAliases()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	detection := aliases.DetectAll(table.Headers)
	for _, kind := range fields.Kinds {
		if col, ok := detection[kind]; ok {
			logger.Debug("field detected", "field", kind.String(), "column", col)
		} else {
			logger.Debug("field not found", "field", kind.String())
		}
	}

	windows, invalid := ComputeWindows(table, detection)
	if invalid > 0 {
		logger.Warn("timestamps could not be parsed", "rows", invalid, "column", detection.Column(fields.Time))
	}

	records := MapRows(table, detection, windows)

	return &Result{
		Records:   records,
		Detection: detection,
		Stats: Stats{
			Rows:              len(records),
			FieldsDetected:    len(detection),
			InvalidTimestamps: invalid,
		},
	}, nil
}

// ComputeWindows normalizes the detected time column of every row. It
// returns nil when no time column was detected. invalid counts non-empty
// values that failed to parse.
func ComputeWindows(table *types.Table, detection fields.Detection) (windows []timefmt.Window, invalid int) {
	col, ok := detection[fields.Time]
	if !ok {
		return nil, 0
	}

	windows = make([]timefmt.Window, table.Len())
	for i := range table.Rows {
		raw := table.Value(i, col)
		windows[i] = timefmt.WindowFor(raw)
		if raw != "" && !windows[i].Valid {
			invalid++
		}
	}
	return windows, invalid
}

// =============================================================================
// ROW MAPPER
// =============================================================================

// MapRows builds one record per input row. windows may be nil (no time
// column) or must have one entry per row.
func MapRows(table *types.Table, detection fields.Detection, windows []timefmt.Window) []emlid.Record {
	records := make([]emlid.Record, table.Len())

	for i := range records {
		r := emlid.NewRecord()

		r[emlid.Name] = table.Value(i, detection.Column(fields.Name))
		r[emlid.Longitude] = table.Value(i, detection.Column(fields.Longitude))
		r[emlid.Latitude] = table.Value(i, detection.Column(fields.Latitude))
		r[emlid.Elevation] = table.Value(i, detection.Column(fields.Elevation))
		r[emlid.AntennaHeight] = table.Value(i, detection.Column(fields.AntennaHeight))

		if i < len(windows) {
			r[emlid.AveragingStart], r[emlid.AveragingEnd] = windows[i].Strings()
		}

		records[i] = r
	}

	return records
}
