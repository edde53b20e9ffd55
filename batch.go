package latex

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MarkAll masks independent documents concurrently. Every document gets its own store, stores are returned in the
// order of documents. WithStore option is ignored.
func MarkAll(ctx context.Context, cfg Config, docs []*Node, opts ...Option) ([]*Store, error) {
	r, err := cfg.compile()
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	stores := make([]*Store, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			m := &Marker{rules: r, store: newStore(r.formatter), log: o.log.With(zap.Int("document", i))}
			if err := m.Mark(doc); err != nil {
				return fmt.Errorf("unable to mark document #%d: %w", i, err)
			}

			stores[i] = m.store
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stores, nil
}
