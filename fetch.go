package docq

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/docq/internal/logger"
)

// Fetch runs the pipeline: the builder's query stages against the handle,
// then Config.Preprocess over the result, materialization without store
// metadata, then result stages by phase.
//
// An empty result is returned as an empty slice. ErrNotFound is returned only
// when a result stage yields no sequence at all.
func (b *Builder) Fetch(ctx context.Context) ([]Record, error) {
	if b.fetched {
		return nil, ErrBuilderSpent
	}
	b.fetched = true

	if b.err != nil {
		return nil, b.err
	}
	if b.query == nil {
		return nil, errors.New("docq: query handle is required")
	}

	start := time.Now()
	h := b.query
	stages := slices.Concat(b.pre, b.prepro)
	for i, stage := range stages {
		if h = stage(h); h == nil {
			return nil, fmt.Errorf("docq: query stage %d returned no handle", i)
		}
	}

	data, err := h.Materialize(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	materialized := len(data)
	if data == nil {
		data = []Record{}
	}

	for phase := range phaseCount {
		for _, stage := range b.post[phase] {
			data = stage(data)
		}
	}

	logpkg.FromContext(ctx).Debug("query fetched",
		zap.Int("query_stages", len(stages)),
		zap.Int("materialized", materialized),
		zap.Int("returned", len(data)),
		zap.Duration("latency", time.Since(start)),
	)

	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}
