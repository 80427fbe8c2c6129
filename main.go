// =============================================================================
// YPBank Transaction Tools - Main Entry Point
// =============================================================================
//
// This is the main entry point for the ypbank CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   ypbank compare   - Compare the records of two resources
//   ypbank convert   - Convert records between formats and resources
//   ypbank version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Codecs, dispatch, comparer, converter, report, config
//   - pkg/           : Resource handling shared by the commands
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/ypbank-tools/cmd"
)

func main() {
	cmd.Execute()
}
