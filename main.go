// =============================================================================
// SW Maps to Emlid Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the SW Maps to Emlid Converter CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   swmaps2emlid convert <input>   - Convert a SW Maps export to Emlid CSV
//   swmaps2emlid inspect <input>   - Show detected columns without writing
//   swmaps2emlid version           - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core conversion logic (not for external import)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/swmaps2emlid/cmd"
)

func main() {
	cmd.Execute()
}
