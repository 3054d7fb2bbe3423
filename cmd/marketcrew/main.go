// marketcrew is a CLI that negotiates a buyer's purchase request against a
// catalog of seller offers through a four-stage agent pipeline.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"marketcrew/internal/logging"
)

const version = "0.3.0"

var (
	// Global flags
	verbose     bool
	configPath  string
	catalogPath string
	timeout     time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command. Run without arguments it starts the
// interactive loop.
var rootCmd = &cobra.Command{
	Use:   "marketcrew",
	Short: "marketcrew - multi-agent marketplace negotiation",
	Long: `marketcrew coordinates a seller/buyer negotiation over a product catalog.

A buyer request (free text or JSON) is normalized, matched against the
catalog, and then pushed through four reasoning stages:
  1. Shortlist: a junior seller proposes up to 3 matching offers
  2. Review:    a senior seller validates or corrects the shortlist
  3. Selection: a junior buyer picks the best offer
  4. Approval:  a senior buyer accepts or revises the selection

Run without arguments to start the interactive loop.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the marketcrew version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marketcrew %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "marketcrew.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog path, overrides the config")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall run timeout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
