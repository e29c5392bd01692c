// =============================================================================
// SW Maps to Emlid Converter - CSV Writer Module
// =============================================================================
//
// This module writes converted points in the Emlid Flow import layout:
//
//   Name,Code,Easting,Northing,Elevation,...,QZSS Satellites   <- fixed header
//   A1,,,,35.2,,-0.1,51.5,...                                  <- one row per point
//
// Values are written as-is with standard CSV escaping. A failure part way
// through can leave a partial file behind.
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/swmaps2emlid/internal/emlid"
	"github.com/ginjaninja78/swmaps2emlid/pkg/utils"
)

// Write encodes the header and all records to w.
func Write(w io.Writer, records []emlid.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(emlid.Header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, record := range records {
		if err := cw.Write(record.Slice()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteFile writes the records to path, creating parent directories as
// needed. An existing file is replaced.
func WriteFile(path string, records []emlid.Record) (err error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return Write(file, records)
}
