package cache

import (
	"context"
	"strconv"

	"github.com/greentips/tips-platform/internal/domain/stats"
	"github.com/greentips/tips-platform/internal/domain/tip"
	basecache "github.com/greentips/tips-platform/internal/platform/cache"
)

const (
	tipListPrefix   = "tip:list:"
	statsPrefix     = "stats:"
	statsSummaryKey = "stats:summary"
)

// TipRepository caches tip listings in front of a persistent repository.
// Writes invalidate every cached listing.
type TipRepository struct {
	next  tip.Repository
	cache *basecache.Store
}

func NewTipRepository(next tip.Repository, cache *basecache.Store) *TipRepository {
	return &TipRepository{next: next, cache: cache}
}

func tipListKey(filter tip.Filter) string {
	sport := "all"
	if filter.Sport != nil {
		sport = *filter.Sport
	}
	audience := "all"
	if filter.IsVIP != nil {
		audience = strconv.FormatBool(*filter.IsVIP)
	}
	return tipListPrefix + sport + ":" + audience
}

func (r *TipRepository) Save(ctx context.Context, tips []tip.Tip) error {
	if err := r.next.Save(ctx, tips); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, tipListPrefix)
	return nil
}

func (r *TipRepository) List(ctx context.Context, filter tip.Filter) ([]tip.Tip, error) {
	v, err := r.cache.GetOrLoad(ctx, tipListKey(filter), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]tip.Tip(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]tip.Tip)
	return append([]tip.Tip(nil), items...), nil
}

func (r *TipRepository) GetByID(ctx context.Context, id int64) (tip.Tip, error) {
	return r.next.GetByID(ctx, id)
}

func (r *TipRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := r.next.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, tipListPrefix)
	return nil
}

func (r *TipRepository) CountByStatus(ctx context.Context) ([]tip.StatusCount, error) {
	return r.next.CountByStatus(ctx)
}

// StatsRepository caches the statistics singleton.
type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store
}

func NewStatsRepository(next stats.Repository, cache *basecache.Store) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) Get(ctx context.Context) (stats.Statistics, error) {
	v, err := r.cache.GetOrLoad(ctx, statsSummaryKey, func(ctx context.Context) (any, error) {
		return r.next.Get(ctx)
	})
	if err != nil {
		return stats.Statistics{}, err
	}

	cached, _ := v.(stats.Statistics)
	return cached, nil
}

func (r *StatsRepository) Upsert(ctx context.Context, s stats.Statistics) error {
	if err := r.next.Upsert(ctx, s); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, statsPrefix)
	return nil
}
