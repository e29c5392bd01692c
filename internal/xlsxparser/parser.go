// =============================================================================
// SW Maps to Emlid Converter - XLSX Parser
// =============================================================================
//
// Survey apps can also share their point layers as spreadsheets. This module
// reads one worksheet into the same types.Table the CSV parser produces:
//
//   | Column A | Column B  | Column C | Column D  | ...
//   |----------|-----------|----------|-----------|
//   | Name     | Time      | Latitude | Longitude | ...   <- header row
//   | P1       | 2024-...  | 51.5     | -0.1      | ...   <- data rows
//
// The first non-empty row is the header. Cell values are read as displayed
// text, so coordinates keep the precision shown in the sheet.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/ginjaninja78/swmaps2emlid/internal/config"
	"github.com/ginjaninja78/swmaps2emlid/internal/csvparser"
	"github.com/ginjaninja78/swmaps2emlid/internal/types"
	"github.com/xuri/excelize/v2"
)

// Parse reads the configured worksheet of the workbook at path. An empty
// sheet name selects the first sheet.
func Parse(path string, settings config.XLSXSettings) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, settings.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}

	table, err := csvparser.FromRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}
	table.SourceFile = path
	return table, nil
}

// resolveSheet checks that the requested sheet exists, or picks the first one.
func resolveSheet(f *excelize.File, want string) (string, error) {
	if want == "" {
		name := f.GetSheetName(0)
		if name == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return name, nil
	}

	idx, err := f.GetSheetIndex(want)
	if err != nil || idx < 0 {
		return "", fmt.Errorf("sheet %q not found (available: %v)", want, f.GetSheetList())
	}
	return want, nil
}
