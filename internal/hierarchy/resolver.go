// Package hierarchy turns the flat list of pages shared with an
// integration into an indented, alphabetically ordered outline.
package hierarchy

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/longkey1/notion-presence/internal/logger"
	"github.com/longkey1/notion-presence/internal/notion/types"
)

const (
	// DefaultConcurrency is the number of pages resolved at once
	DefaultConcurrency = 10
	// DefaultTimeout bounds a single page resolution
	DefaultTimeout = 15 * time.Second
)

// Options configures a Resolver
type Options struct {
	Concurrency int
	Timeout     time.Duration
}

// Resolver lists, resolves and flattens pages
type Resolver struct {
	opts Options
}

// NewResolver creates a Resolver. Zero values fall back to the defaults.
func NewResolver(opts Options) *Resolver {
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Resolver{opts: opts}
}

// Resolve returns the flattened hierarchy of every page the client can see.
// A listing failure yields a *RemoteListError and no entries; pages that
// fail to resolve are dropped.
func (r *Resolver) Resolve(ctx context.Context, client types.Client) ([]Entry, error) {
	ids, err := client.ListPageIDs(ctx)
	if err != nil {
		logger.Error("failed to list pages", err)
		return nil, &RemoteListError{Err: err}
	}
	logger.Debug("listed pages", map[string]interface{}{
		"count": len(ids),
	})

	pages := r.resolveAll(ctx, client, ids)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := BuildForest(pages).Flatten()
	logger.Debug("built hierarchy", map[string]interface{}{
		"resolved": len(pages),
		"entries":  len(entries),
	})
	return entries, nil
}

// resolveAll resolves ids with at most Concurrency calls in flight. The
// result keeps the listing order and omits failed pages.
func (r *Resolver) resolveAll(ctx context.Context, client types.Client, ids []string) []types.PageRef {
	results := make([]*types.PageRef, len(ids))

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			ref, err := r.resolveOne(ctx, client, id)
			if err != nil {
				logger.Debug("skipping page", map[string]interface{}{
					"reason": (&RemoteResolveError{PageID: id, Err: err}).Error(),
				})
				return nil
			}
			results[i] = ref
			return nil
		})
	}
	_ = g.Wait()

	pages := make([]types.PageRef, 0, len(ids))
	for _, ref := range results {
		if ref != nil {
			pages = append(pages, *ref)
		}
	}
	return pages
}

func (r *Resolver) resolveOne(ctx context.Context, client types.Client, id string) (*types.PageRef, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	ref, err := client.ResolvePage(ctx, id)
	if err != nil {
		return nil, err
	}

	// Key by the listed id so parents and children match up.
	out := *ref
	out.ID = id
	return &out, nil
}
