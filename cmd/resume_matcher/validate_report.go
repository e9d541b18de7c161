package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

func newValidateReportCmd() *cobra.Command {
	var inPath string

	cmd := &cobra.Command{
		Use:   "validate-report",
		Short: "Validate a MatchReport JSON file against its schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := schemas.ValidateFile(schemas.MatchReportSchema, inPath); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid match report\n", inPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "", "Path to report JSON (required)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
