package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/dictionary"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/textnorm"
)

type keywordsOptions struct {
	inPath  string
	jsonOut bool
}

func newKeywordsCmd(global *globalOptions) *cobra.Command {
	opts := &keywordsOptions{}

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Print the weighted keywords extracted from a document",
		Long:  "Normalize a resume or job description and print its keywords with their weights. No embedding provider is used.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKeywords(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inPath, "in", "i", "", "Path to the document, or - for stdin (required)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print keywords as a JSON array")

	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runKeywords(cmd *cobra.Command, global *globalOptions, opts *keywordsOptions) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	dict, err := dictionary.Load(cfg.DictionaryPath)
	if err != nil {
		return err
	}

	text, err := readText(opts.inPath, "document")
	if err != nil {
		return err
	}

	doc, err := textnorm.New(dict).Normalize(text)
	if err != nil {
		return textnorm.WithInput(err, "document")
	}
	terms := keywords.New(dict, cfg.MaxKeywords).Extract(doc.Tokens)

	if opts.jsonOut {
		data, err := json.MarshalIndent(terms, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal keywords: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(fmt.Sprintf("KEYWORDS (%d)", len(terms)), terms)
	return nil
}
