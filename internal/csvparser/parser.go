// =============================================================================
// SW Maps to Emlid Converter - CSV Parser Module
// =============================================================================
//
// This module reads a survey point export into a types.Table.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, tab, pipe, ...)
//   - UTF-8 byte order mark stripped from the first header
//   - Lazy quotes and ragged rows tolerated
//   - Headers trimmed, lowercased and de-duplicated
//   - Blank lines skipped
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/swmaps2emlid/internal/config"
	"github.com/ginjaninja78/swmaps2emlid/internal/types"
)

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the CSV file at filePath.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := Read(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath
	return table, nil
}

// Read parses CSV data from r. The first non-blank record is the header.
func Read(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	reader := bufio.NewReader(r)
	stripUTF8BOM(reader)

	csvReader := csv.NewReader(reader)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return FromRecords(allRows)
}

// FromRecords builds a table from raw records. The first non-blank record is
// the header; blank records are skipped.
func FromRecords(records [][]string) (*types.Table, error) {
	start := 0
	for start < len(records) && isRowEmpty(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, ErrEmptyFile
	}

	headers := CleanHeaders(records[start])
	table := &types.Table{
		Headers: headers,
		Rows:    make([]types.Row, 0, len(records)-start-1),
	}

	for _, record := range records[start+1:] {
		if isRowEmpty(record) {
			continue
		}
		table.Rows = append(table.Rows, toRow(headers, record))
	}

	return table, nil
}

// configureReader applies the settings to the CSV reader.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Exports are not always rectangular.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return nil
}

// stripUTF8BOM discards a leading byte order mark.
func stripUTF8BOM(r *bufio.Reader) {
	b, err := r.Peek(3)
	if err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
}

// =============================================================================
// HEADERS AND ROWS
// =============================================================================

// CleanHeaders trims and lowercases header values. Empty headers become
// "column_N" and repeated names get a "_N" suffix, so every column keeps a
// distinct key and the first occurrence keeps the plain name.
func CleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	seen := make(map[string]int, len(headers))

	for i, header := range headers {
		header = strings.ToLower(strings.TrimSpace(header))
		if header == "" {
			header = fmt.Sprintf("column_%d", i+1)
		}

		if seen[header] > 0 {
			base := header
			for n := seen[base] + 1; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if seen[candidate] == 0 {
					header = candidate
					seen[base] = n
					break
				}
			}
		}
		seen[header]++

		cleaned[i] = header
	}

	return cleaned
}

// toRow maps a record onto the headers. Missing trailing cells are empty;
// cells beyond the header are dropped.
func toRow(headers []string, record []string) types.Row {
	row := make(types.Row, len(headers))
	for i, header := range headers {
		if i < len(record) {
			row[header] = strings.TrimSpace(record[i])
		} else {
			row[header] = ""
		}
	}
	return row
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
