package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/gobook/internal/logger"
	"github.com/itsmostafa/gobook/internal/version"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "gobook",
	Short: "Build books from Markdown",
	Long: `gobook builds a static HTML book from a directory of Markdown chapters.

The outline lives in src/SUMMARY.md: a list of links that becomes the
numbered table of contents. Links outside the list are un-numbered front or
back matter, and a horizontal rule separates parts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("gobook %s\n", version.String()))

	// Log level flag with env var fallback
	defaultLevel := "info"
	if envLevel := os.Getenv("GOBOOK_LOG_LEVEL"); envLevel != "" {
		defaultLevel = envLevel
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLevel, "Log level (debug, info, warn, error)")
}

// newLogger builds the command logger from --log-level. Logs go to stderr
// so command output stays pipeable.
func newLogger() (*logger.Logger, error) {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return logger.NewWithLevel(os.Stderr, level), nil
}

// bookDir returns the optional directory argument, defaulting to ".".
func bookDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
