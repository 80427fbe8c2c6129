// =============================================================================
// YPBank Transaction Tools - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// COMMAND USAGE:
//   ypbank version
//
// OUTPUT:
//   YPBank Transaction Tools
//   Version:    1.0.0
//   Build Date: 2026-01-01
//   Go Version: go1.24.0
//   Formats:    YpBankBin, YpBankCsv, YpBankText
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================
// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/ypbank-tools/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// =============================================================================
// VERSION COMMAND DEFINITION
// =============================================================================

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, Go runtime version and supported formats.`,
	Run: func(cmd *cobra.Command, args []string) {
		names := make([]string, len(types.Formats))
		for i, f := range types.Formats {
			names[i] = f.String()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "YPBank Transaction Tools")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "Formats:    %s\n", strings.Join(names, ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
