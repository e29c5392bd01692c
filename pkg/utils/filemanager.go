// =============================================================================
// SW Maps to Emlid Converter - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the converter, including:
//   - Output file naming from a placeholder pattern
//   - Resolving the default output path beside the input
//   - Directory management
//   - Revealing the output folder in the platform file browser
//
// NAMING STRATEGY:
//   - The pattern comes from the output_name configuration key
//   - The generated name always carries a .csv extension
//   - The clock is injected so names are reproducible in tests
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Original file name (without extension)
//   - params: A map of placeholder values. Keys are given without braces.
//   - clock: The time source. nil means the real clock.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{original}_emlid_{date}"
//   params: {"original": "survey"}
//   output: "survey_emlid_20240115.csv"
func GenerateOutputFileName(format string, params map[string]string, clock clockwork.Clock) string {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	now := clock.Now()

	builtins := map[string]string{
		"timestamp": now.Format("20060102_150405"),
		"date":      now.Format("20060102"),
		"time":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		builtins["uuid"] = uuid.New().String()
	}

	// A single pass over format: substituted values are never expanded
	// again, so an original name containing "{date}" stays literal. params
	// override built-ins of the same name.
	var pairs []string
	for _, key := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, "{"+key+"}", params[key])
	}
	for _, key := range slices.Sorted(maps.Keys(builtins)) {
		if _, ok := params[key]; !ok {
			pairs = append(pairs, "{"+key+"}", builtins[key])
		}
	}
	result := strings.NewReplacer(pairs...).Replace(format)

	if !strings.HasSuffix(strings.ToLower(result), ".csv") {
		result += ".csv"
	}

	return result
}

// ResolveOutputPath builds the default output path for inputPath: the name
// generated from format, placed in the input's directory.
func ResolveOutputPath(inputPath, format string, clock clockwork.Clock) string {
	base := filepath.Base(inputPath)
	original := strings.TrimSuffix(base, filepath.Ext(base))

	name := GenerateOutputFileName(format, map[string]string{"original": original}, clock)
	return filepath.Join(filepath.Dir(inputPath), name)
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// OUTPUT REVEAL
// =============================================================================

// ErrUnsupportedPlatform is returned when no file browser command is known
// for the running OS.
var ErrUnsupportedPlatform = errors.New("no file browser for this platform")

// OSRevealer opens directories with the platform's file browser.
type OSRevealer struct {
	// GOOS overrides runtime.GOOS. Empty means the running OS.
	GOOS string
}

// Reveal starts the file browser on dir without waiting for it to exit.
func (r OSRevealer) Reveal(dir string) error {
	goos := r.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	name, args, err := revealCommand(goos, dir)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	// explorer.exe exits non-zero even on success, so the result is not checked.
	go func() { _ = cmd.Wait() }()

	return nil
}

// revealCommand returns the program and arguments that open dir on goos.
func revealCommand(goos, dir string) (string, []string, error) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}, nil
	case "darwin":
		return "open", []string{dir}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{dir}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}
