// =============================================================================
// YPBank Transaction Tools - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ypbank)
//   ├── compareCmd (ypbank compare)
//   ├── convertCmd (ypbank convert)
//   └── versionCmd (ypbank version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the configuration file named by --config
//   2. Builds the diagnostics logger (stderr or log_file)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ypbank-tools/internal/config"
	"github.com/ginjaninja78/ypbank-tools/internal/dispatch"
	"github.com/ginjaninja78/ypbank-tools/internal/logging"
	"github.com/ginjaninja78/ypbank-tools/internal/types"
	"github.com/ginjaninja78/ypbank-tools/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and logger are set up by loadRuntime before a subcommand runs.
var (
	appConfig *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ypbank",
	Short: "YPBank transaction tools - compare and convert transaction files",
	Long: `YPBank transaction tools read and write transaction records in three
interchange formats:

  YpBankBin   big-endian binary frames starting with the YPBN magic
  YpBankCsv   comma separated values with a fixed header
  YpBankText  blocks of KEY: value lines

Resources are either 'console' (stdin/stdout) or 'file:<path>'.

Example Usage:
  ypbank convert --from file:records.bin --from-format YpBankBin --to console --to-format YpBankText
  ypbank compare --first-from file:a.csv --first-format YpBankCsv --second-from file:b.csv --second-format YpBankCsv`,

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRuntime(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		closeRuntime()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: the file is optional unless the flag is set explicitly.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadRuntime loads the configuration and builds the logger.
func loadRuntime(cmd *cobra.Command) error {
	required := cmd.Flags().Changed("config")

	cfg, err := config.Load(cfgFile, required)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	log, closer, err := logging.Open(cfg, verbose)
	if err != nil {
		return errors.Wrap(err, "setting up logging")
	}

	appConfig = cfg
	logger = log.With("cmd", cmd.Name())
	logCloser = closer

	logger.Debug("configuration loaded", "path", cfgFile, "required", required,
		"csv_header_check", cfg.CSV.HeaderCheck)
	return nil
}

func closeRuntime() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// readOptions translates configuration into decode options.
func readOptions() []dispatch.Option {
	if appConfig != nil && appConfig.StrictCSVHeader() {
		return []dispatch.Option{dispatch.WithStrictCSVHeader()}
	}
	return nil
}

// parseEndpoint turns a resource flag and a format flag into typed values.
// The flag names only appear in error messages.
func parseEndpoint(resourceFlag, resource, formatFlag, format string) (utils.Resource, types.Format, error) {
	res, err := utils.ParseResource(resource)
	if err != nil {
		return utils.Resource{}, 0, errors.Wrapf(err, "--%s", resourceFlag)
	}
	f, err := types.ParseFormat(format)
	if err != nil {
		return utils.Resource{}, 0, errors.Wrapf(err, "--%s", formatFlag)
	}
	return res, f, nil
}
