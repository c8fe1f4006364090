// Package refdata loads the option lists offered by the intake forms.
package refdata

import (
	"context"
	"finplan/pkg/domain"
	"finplan/pkg/logger"
	"finplan/pkg/planner"
	"finplan/pkg/refcache"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Loader fetches countries, industries and currencies.
type Loader struct {
	client planner.Client
	cache  *refcache.Cache
}

// NewLoader returns a Loader using client. cache is optional.
func NewLoader(client planner.Client, cache *refcache.Cache) *Loader {
	return &Loader{client: client, cache: cache}
}

// Load fetches the three lists concurrently. A list that cannot be fetched is
// left empty and the failure is logged; Load itself never fails and never
// retries.
func (l *Loader) Load(ctx context.Context) domain.ReferenceOptions {
	var opts domain.ReferenceOptions

	// every fetch reports success, the group only joins them
	var g errgroup.Group
	g.Go(func() error {
		opts.Countries = fetch(ctx, l.cache, "countries", l.client.Countries)

		return nil
	})
	g.Go(func() error {
		opts.Industries = fetch(ctx, l.cache, "industries", l.client.Industries)

		return nil
	})
	g.Go(func() error {
		opts.Currencies = fetch(ctx, l.cache, "currencies", l.client.Currencies)

		return nil
	})
	_ = g.Wait()

	return opts
}

func fetch[T any](
	ctx context.Context,
	cache *refcache.Cache,
	name string,
	get func(context.Context) ([]T, error),
) []T {
	list, err := refcache.GetOrLoad(ctx, cache, name, get)
	if err != nil {
		logger.Warn(ctx, "could not load reference data", zap.String("list", name), zap.Error(err))

		return []T{}
	}
	if list == nil {
		return []T{}
	}

	return list
}
