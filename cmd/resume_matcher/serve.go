package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/server"
)

func newServeCmd(global *globalOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing POST /analyze and GET /health.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, global, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, global *globalOptions, port int) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	ctx := cmd.Context()

	engine, err := matching.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	var suggester server.Suggester
	if gen, client, err := newSuggester(ctx, cfg); err != nil {
		logger.Info("suggestions disabled", slog.Any("reason", err))
	} else {
		defer func() { _ = client.Close() }()
		suggester = gen
	}

	srv, err := server.New(server.Config{
		Port:          port,
		MaxInputChars: cfg.MaxInputChars,
		Logger:        logger,
	}, engine, suggester)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
