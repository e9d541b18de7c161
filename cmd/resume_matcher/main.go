// Package main provides the entry point for the resume_matcher CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "resume_matcher",
		Short: "Score a resume against a job description",
		Long: "resume_matcher compares a resume with a job description and reports an overall match " +
			"score, semantic and keyword sub-scores, and the job keywords missing from the resume.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file (default $RESUME_MATCHER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print debug logs and a formatted report to stderr")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newKeywordsCmd(opts),
		newServeCmd(opts),
		newValidateReportCmd(),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
