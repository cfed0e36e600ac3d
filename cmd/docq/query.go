package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docq/internal/domain/search/expr"
	logpkg "github.com/kailas-cloud/docq/internal/logger"
	queryuc "github.com/kailas-cloud/docq/internal/usecase/query"
)

// Query flags mirror the HTTP query parameters.
const (
	flagFields   = "fields"
	flagSort     = "sort"
	flagOrder    = "order"
	flagWhere    = "where"
	flagSearch   = "q"
	flagField    = "field"
	flagLimit    = "limit"
	flagSkip     = "skip"
	flagSurround = "surround"
	flagBefore   = "before"
	flagAfter    = "after"
)

func newQueryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "query <collection>",
		Short: "Run one fetch and print the records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	c.Flags().StringSlice(flagFields, nil, "Keep only these fields")
	c.Flags().String(flagSort, "", "Sort field")
	c.Flags().String(flagOrder, "asc", "Sort order: asc, desc")
	c.Flags().StringArray(flagWhere, nil, "Filter as field:value (repeatable)")
	c.Flags().StringP(flagSearch, "q", "", "Full-text search term")
	c.Flags().String(flagField, "", "Restrict the search term to one field")
	c.Flags().String(flagLimit, "", "Maximum number of records")
	c.Flags().String(flagSkip, "", "Number of records to skip")
	c.Flags().String(flagSurround, "", "Return the neighbors of this slug")
	c.Flags().Int(flagBefore, 1, "Neighbors before the surround slug")
	c.Flags().Int(flagAfter, 1, "Neighbors after the surround slug")
	return c
}

func runQuery(c *cobra.Command, args []string) error {
	req, err := requestFromFlags(c)
	if err != nil {
		return err
	}

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

	return fetchJSON(ctx, c.OutOrStdout(), a.query, args[0], req)
}

// requestFromFlags builds a fetch request from command flags.
func requestFromFlags(c *cobra.Command) (*queryuc.Request, error) {
	f := c.Flags()
	req := &queryuc.Request{}
	req.Fields, _ = f.GetStringSlice(flagFields)
	req.SortField, _ = f.GetString(flagSort)
	req.SortOrder, _ = f.GetString(flagOrder)
	req.Search, _ = f.GetString(flagSearch)
	req.SearchField, _ = f.GetString(flagField)
	req.Limit, _ = f.GetString(flagLimit)
	req.Skip, _ = f.GetString(flagSkip)
	req.Surround, _ = f.GetString(flagSurround)
	req.Before, _ = f.GetInt(flagBefore)
	req.After, _ = f.GetInt(flagAfter)

	wheres, _ := f.GetStringArray(flagWhere)
	for _, w := range wheres {
		cond, err := expr.ParseCondition(w)
		if err != nil {
			return nil, err
		}
		req.Where = append(req.Where, cond)
	}
	return req, nil
}

// fetchJSON runs req and writes the records as an indented JSON array.
func fetchJSON(ctx context.Context, w io.Writer, svc *queryuc.Service, collection string, req *queryuc.Request) error {
	records, err := svc.Run(ctx, collection, req)
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}
