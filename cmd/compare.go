// =============================================================================
// YPBank Transaction Tools - Compare Command
// =============================================================================
//
// This file defines the 'compare' command. It decodes two resources and
// prints "true" when they hold the same records in the same order, "false"
// otherwise.
//
// COMMAND USAGE:
//   ypbank compare --first-from <res> --first-format <fmt> \
//                  --second-from <res> --second-format <fmt> [--report <file.xlsx>]
//
// Records decoded from different formats never compare equal, even when all
// of their fields match.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ypbank-tools/internal/comparer"
	"github.com/ginjaninja78/ypbank-tools/internal/report"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	firstFrom    string
	firstFormat  string
	secondFrom   string
	secondFormat string
	reportPath   string
)

// =============================================================================
// COMPARE COMMAND DEFINITION
// =============================================================================

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the records of two resources",
	Long: `The compare command reads every record from both resources and prints
true if both sides hold equal records in the same order, false otherwise.

With --report the comparison is also saved as an XLSX workbook listing both
record sets and every index where they differ.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(cmd)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&firstFrom, "first-from", "", "First resource: console or file:<path>")
	compareCmd.Flags().StringVar(&firstFormat, "first-format", "", "First format: YpBankBin, YpBankCsv or YpBankText")
	compareCmd.Flags().StringVar(&secondFrom, "second-from", "", "Second resource: console or file:<path>")
	compareCmd.Flags().StringVar(&secondFormat, "second-format", "", "Second format: YpBankBin, YpBankCsv or YpBankText")
	compareCmd.Flags().StringVar(&reportPath, "report", "", "Optional XLSX file to save the comparison to")

	for _, name := range []string{"first-from", "first-format", "second-from", "second-format"} {
		compareCmd.MarkFlagRequired(name)
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runCompare(cmd *cobra.Command) error {
	first, firstFmt, err := parseEndpoint("first-from", firstFrom, "first-format", firstFormat)
	if err != nil {
		return err
	}
	second, secondFmt, err := parseEndpoint("second-from", secondFrom, "second-format", secondFormat)
	if err != nil {
		return err
	}

	logger.Debug("comparing",
		"first", first.String(), "first_format", firstFmt.String(),
		"second", second.String(), "second_format", secondFmt.String())

	result, err := comparer.Compare(first, firstFmt, second, secondFmt, readOptions()...)
	if err != nil {
		return err
	}

	logger.Debug("comparison complete",
		"equal", result.Equal,
		"first_records", result.FirstCount(),
		"second_records", result.SecondCount(),
		"mismatches", len(result.Mismatches))
	for _, m := range result.Mismatches {
		logger.Debug("mismatch", "index", m.Index, "in_first", m.InFirst, "in_second", m.InSecond, "fields", m.Fields)
	}

	if reportPath != "" {
		sheets := report.SheetNames{First: appConfig.Report.SheetFirst, Second: appConfig.Report.SheetSecond}
		if err := report.WriteComparison(reportPath, result, sheets); err != nil {
			return errors.Wrap(err, "writing comparison report")
		}
		logger.Debug("report written", "path", reportPath)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Equal)
	return nil
}
