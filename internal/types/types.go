// =============================================================================
// SW Maps to Emlid Converter - Shared Types
// =============================================================================
//
// This package contains the input table shared by the readers (csvparser,
// xlsxparser) and the converter. Keeping it here avoids import cycles between
// the readers and the pipeline.
//
// =============================================================================

package types

// =============================================================================
// INPUT TABLE
// =============================================================================

// Row is a single input record keyed by lowercased column name.
type Row map[string]string

// Table is a survey point export read fully into memory.
type Table struct {
	// Headers contains the lowercased, de-duplicated column names in file order.
	Headers []string

	// Rows contains the data rows in file order. Blank lines are not included.
	Rows []Row

	// SourceFile is the path the table was read from, if any.
	SourceFile string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Value returns the value of column for row i, or "" when the column is
// empty or absent.
func (t *Table) Value(i int, column string) string {
	if column == "" || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][column]
}
