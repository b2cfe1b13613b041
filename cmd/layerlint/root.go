package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"layerlint/internal/config"
	"layerlint/internal/slogutil"
	"layerlint/internal/version"
)

var (
	// repoFlag is the CLI --repo flag value
	repoFlag string

	// verbosity counts -v occurrences
	verbosity int

	// quiet suppresses everything below warnings
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "layerlint",
	Short: "layerlint - layered architecture conformance checker",
	Long: `layerlint checks that the import graph of a codebase respects a declared
layered architecture: modules in lower layers must not import modules in
higher layers, directly or through any chain of internal imports.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("layerlint version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root to analyze")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
}

// newLogger builds the stderr logger. Verbosity flags win over the
// configured log level.
func newLogger(cfg *config.Config) *slog.Logger {
	if verbosity == 0 && !quiet && cfg != nil && cfg.Logging.Level != "" {
		return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(cfg.Logging.Level))
	}
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromVerbosity(verbosity, quiet))
}

// repoRoot resolves the --repo flag to an absolute path.
func repoRoot() (string, error) {
	return filepath.Abs(repoFlag)
}
