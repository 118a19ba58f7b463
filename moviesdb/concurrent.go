package moviesdb

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds how many title lookups run at once in
// TitlesByIDs.
const DefaultBatchConcurrency = 10

// TitlesByIDs fetches several titles concurrently, keyed by id. All ids are
// validated before any request is issued. The first failing lookup cancels
// the rest and is returned.
func (c *Client) TitlesByIDs(ctx context.Context, ids []string, q Query) (map[string]*Title, error) {
	for _, id := range ids {
		if err := validateTitleID(id); err != nil {
			return nil, err
		}
	}

	results := make(map[string]*Title, len(ids))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultBatchConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			title, err := c.TitleByID(ctx, id, q)
			if err != nil {
				return err
			}

			mu.Lock()
			results[id] = title
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
