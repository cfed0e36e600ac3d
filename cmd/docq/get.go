package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	logpkg "github.com/kailas-cloud/docq/internal/logger"
	queryuc "github.com/kailas-cloud/docq/internal/usecase/query"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <slug>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, env, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx := logpkg.ContextWithLogger(c.Context(), logger)
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			return getJSON(ctx, c.OutOrStdout(), a.query, args[0], args[1])
		},
	}
}

func getJSON(ctx context.Context, w io.Writer, svc *queryuc.Service, collection, slug string) error {
	rec, err := svc.Get(ctx, collection, slug)
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", collection, slug, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
