package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

type analyzeOptions struct {
	resumePath string
	jobPath    string
	jobURL     string
	outPath    string
	suggest    bool
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare a resume with a job description",
		Long: "Extract text from a resume (PDF, DOCX, HTML or text) and a job description (file or URL), " +
			"score the match and write the MatchReport as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "Path to resume file, or - for stdin (required)")
	cmd.Flags().StringVarP(&opts.jobPath, "job", "j", "", "Path to job description file")
	cmd.Flags().StringVarP(&opts.jobURL, "job-url", "u", "", "URL of the job posting")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.suggest, "suggest", false, "Add LLM improvement suggestions to the report")

	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func runAnalyze(cmd *cobra.Command, global *globalOptions, opts *analyzeOptions) error {
	if opts.jobPath == "" && opts.jobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if opts.jobPath != "" && opts.jobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	ctx := cmd.Context()

	resumeText, err := readText(opts.resumePath, matching.InputResume)
	if err != nil {
		return err
	}
	jobText, err := readJobText(ctx, opts.jobPath, opts.jobURL)
	if err != nil {
		return err
	}
	if err := ingestion.CheckLength(resumeText, matching.InputResume, cfg.MaxInputChars); err != nil {
		return err
	}
	if err := ingestion.CheckLength(jobText, matching.InputJob, cfg.MaxInputChars); err != nil {
		return err
	}

	engine, err := matching.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	report, err := engine.Analyze(ctx, resumeText, jobText)
	if err != nil {
		return fmt.Errorf("failed to analyze: %w", err)
	}

	if opts.suggest {
		addSuggestions(cmd, cfg, logger, resumeText, jobText, report)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := schemas.Validate(schemas.MatchReportSchema, data); err != nil {
		logger.Warn("report does not match schema", slog.Any("error", err))
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintReport(report)
	}

	if opts.outPath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(opts.outPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("report written", slog.String("path", opts.outPath), slog.String("report_id", report.ID))
	return nil
}

// addSuggestions never fails the command; problems become report warnings.
func addSuggestions(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, resumeText, jobText string, report *types.MatchReport) {
	ctx := cmd.Context()
	gen, client, err := newSuggester(ctx, cfg)
	if err != nil {
		logger.Warn("suggestions unavailable", slog.Any("error", err))
		report.AddWarning(types.WarningSuggestionsUnavailable, err.Error())
		return
	}
	defer func() { _ = client.Close() }()

	text, err := gen.Generate(ctx, resumeText, jobText, report)
	if err != nil {
		logger.Warn("suggestion generation failed", slog.Any("error", err))
		report.AddWarning(types.WarningSuggestionsUnavailable, "suggestion generation failed")
		return
	}
	report.Suggestions = text
}
