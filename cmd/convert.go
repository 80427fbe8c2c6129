// =============================================================================
// YPBank Transaction Tools - Convert Command
// =============================================================================
//
// This file defines the 'convert' command. It reads every record from one
// resource and writes them to another, possibly in a different format.
//
// COMMAND USAGE:
//   ypbank convert --from <res> --from-format <fmt> --to <res> --to-format <fmt>
//
// When the destination is a file a one-line summary is printed to stdout.
// When it is the console, stdout carries only the converted data.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ypbank-tools/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	convertFrom       string
	convertFromFormat string
	convertTo         string
	convertToFormat   string
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert records from one resource and format to another",
	Long: `The convert command decodes the whole source before it opens the
destination, so a malformed source never creates or truncates the destination
file. A failure while writing may leave a partial destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Source resource: console or file:<path>")
	convertCmd.Flags().StringVar(&convertFromFormat, "from-format", "", "Source format: YpBankBin, YpBankCsv or YpBankText")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Destination resource: console or file:<path>")
	convertCmd.Flags().StringVar(&convertToFormat, "to-format", "", "Destination format: YpBankBin, YpBankCsv or YpBankText")

	for _, name := range []string{"from", "from-format", "to", "to-format"} {
		convertCmd.MarkFlagRequired(name)
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(cmd *cobra.Command) error {
	source, sourceFormat, err := parseEndpoint("from", convertFrom, "from-format", convertFromFormat)
	if err != nil {
		return err
	}
	dest, destFormat, err := parseEndpoint("to", convertTo, "to-format", convertToFormat)
	if err != nil {
		return err
	}

	conv := converter.New(source, sourceFormat, dest, destFormat,
		converter.WithLogger(logger),
		converter.WithReadOptions(readOptions()...))
	result := conv.Run()
	if !result.Success {
		return result.Error
	}

	if !dest.IsConsole() {
		fmt.Fprintf(cmd.OutOrStdout(), "converted %d record(s) from %s (%s) to %s (%s), %d bytes in %s\n",
			result.Stats.RecordsRead,
			source, sourceFormat,
			dest, destFormat,
			result.Stats.BytesWritten,
			result.Stats.ProcessingTime)
	}
	return nil
}
