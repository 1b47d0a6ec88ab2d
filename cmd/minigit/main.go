package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

var (
	logLevel  string
	logFormat string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "minigit",
		Short:   "minigit - a compact content-addressed version control engine",
		Long:    getBanner(),
		Version: fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newHashObjectCmd())
	rootCmd.AddCommand(newCatFileCmd())
	rootCmd.AddCommand(newLsTreeCmd())
	rootCmd.AddCommand(newLsFilesCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newRevParseCmd())
	rootCmd.AddCommand(newShowRefCmd())
	rootCmd.AddCommand(newCheckIgnoreCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getBanner() string {
	return `
╔══════════════════════════════════════════════════════╗
║                                                      ║
║   ███╗   ███╗██╗███╗   ██╗██╗ ██████╗ ██╗████████╗   ║
║   ████╗ ████║██║████╗  ██║██║██╔════╝ ██║╚══██╔══╝   ║
║   ██╔████╔██║██║██╔██╗ ██║██║██║  ███╗██║   ██║      ║
║   ██║╚██╔╝██║██║██║╚██╗██║██║██║   ██║██║   ██║      ║
║   ██║ ╚═╝ ██║██║██║ ╚████║██║╚██████╔╝██║   ██║      ║
║   ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═╝ ╚═════╝ ╚═╝   ╚═╝      ║
║                                                      ║
╚══════════════════════════════════════════════════════╝

  ⚙ A compact content-addressed version control engine

  Get started with: minigit init
  Inspect objects:  minigit cat-file -p HEAD
  Need help? Run:   minigit --help

`
}

func setupLogging() {
	level := logger.ParseLevel(logLevel)
	if verbose {
		level = logger.LevelDebug
	}

	format := logger.FormatText
	if logFormat == "json" {
		format = logger.FormatJSON
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
	})
}
